package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/femviewer/core/internal/models"
	"github.com/femviewer/core/internal/parser"
	"github.com/femviewer/core/internal/store"
)

func newParseCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "parse <export.xml>",
		Short: "Parse an export and print its models as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			parsed, err := parser.Parse(data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(parsed)
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func newCensusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "census <export.xml>",
		Short: "Count raw model-attribute names across the export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			census, err := parser.AttributeCensus(data)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(census))
			for name := range census {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", census[name], name)
			}
			return nil
		},
	}
}

func newRefsCmd() *cobra.Command {
	var (
		instanceName string
		kind         string
	)

	cmd := &cobra.Command{
		Use:   "refs <export.xml>",
		Short: "List the instances that reference a named instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			parsed, err := parser.Parse(data)
			if err != nil {
				return err
			}

			st := store.New()
			st.AddModels(parsed)

			target, ok := findInstance(parsed, instanceName)
			if !ok {
				return fmt.Errorf("no instance named %q in export", instanceName)
			}

			kinds := models.InterrefKinds
			if kind != "" {
				kinds = []models.InterrefKind{models.InterrefKind(kind)}
			}

			for _, k := range kinds {
				for _, rec := range st.InstancesThatReference(target, k) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s / %s\n",
						k, rec.ReferencedByModel, rec.ReferencedByInstance)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&instanceName, "instance", "", "target instance name")
	cmd.Flags().StringVar(&kind, "kind", "", "restrict to one reference kind, e.g. \"Referenced Asset\"")
	_ = cmd.MarkFlagRequired("instance")
	return cmd
}

func findInstance(parsed []models.Model, name string) (models.Instance, bool) {
	for _, m := range parsed {
		for _, inst := range m.Instances {
			if inst.Name == name || inst.DisplayValue() == name {
				return inst, true
			}
		}
	}
	return models.Instance{}, false
}
