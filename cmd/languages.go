/*
Copyright © 2025 dfop02

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var languagesServices []string

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List language codes supported by each service",
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceList, err := buildServices(languagesServices, "http://localhost:11434", "", "", nil)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SERVICE\tLANGUAGES")
		for _, svc := range serviceList {
			langs, err := svc.SupportedLanguages(cmd.Context())
			if err != nil {
				fmt.Fprintf(w, "%s\terror: %v\n", svc.Name(), err)
				continue
			}
			if langs == nil {
				fmt.Fprintf(w, "%s\tany (unconstrained)\n", svc.Name())
				continue
			}
			fmt.Fprintf(w, "%s\t%s\n", svc.Name(), strings.Join(langs, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().StringSliceVar(&languagesServices, "services", []string{"google", "systran", "mymemory", "ollama"}, "Services to query (comma-separated)")
}
