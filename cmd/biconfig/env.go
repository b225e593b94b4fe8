// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ManuGH/biconfig/internal/config"
)

func runEnv(args []string, stdout, stderr io.Writer) int {
	var cf commonFlags
	fs := newFlagSet("env", stderr, &cf)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	status, err := config.RecognizedEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIABLE\tSETTING\tSET")
	for _, st := range status {
		set := "no"
		if st.Set {
			set = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", st.Key, st.Setting, set)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}
