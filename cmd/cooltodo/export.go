package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/cooltodo/domain"
	"github.com/fastygo/cooltodo/usecase/app"
)

func exportCmd(rt *runtime) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump tasks, profile and notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.query(cmd, app.QryExport, nil)
			if err != nil {
				return rt.fail(cmd, err)
			}
			dump, err := resultAs[app.Export](res)
			if err != nil {
				return rt.fail(cmd, err)
			}
			if rt.jsonOut {
				return rt.render(cmd, dump, nil)
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return rt.fail(cmd, domain.WrapError(domain.ErrCodeInternal, "failed to create export file", err))
				}
				defer f.Close()
				w = f
			}
			return rt.fail(cmd, writeExport(w, format, dump))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func writeExport(w io.Writer, format string, dump app.Export) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	default:
		return domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unknown export format %q", format))
	}
}
