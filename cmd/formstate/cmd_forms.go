package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/definition"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/tui"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file|url>",
		Short: "Fill a form described by a YAML or JSON definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := definition.Read(ctx, args[0], definition.WithHTTPFallback(requestTimeout))
			if err != nil {
				return err
			}
			def, err := definition.Parse(data)
			if err != nil {
				return err
			}
			return a.fillDefinition(cmd, def)
		},
	}
}

func newOpenAPICmd(a *app) *cobra.Command {
	var source, operation string
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Fill the request body form of an OpenAPI operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if operation == "" {
				return errors.New("--operation is required")
			}
			ctx := cmd.Context()
			data, err := definition.Read(ctx, source, definition.WithHTTPFallback(requestTimeout))
			if err != nil {
				return err
			}
			def, err := definition.FromOpenAPI(ctx, data, operation)
			if err != nil {
				return err
			}
			return a.fillDefinition(cmd, def)
		},
	}
	cmd.Flags().StringVar(&source, "source", "openapi.yaml", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&operation, "operation", "", "operation ID whose request body is collected")
	return cmd
}

func (a *app) fillDefinition(cmd *cobra.Command, def definition.Definition) error {
	schema, err := def.Schema()
	if err != nil {
		return err
	}
	r, err := a.renderer()
	if err != nil {
		return err
	}

	var submitted form.Values
	c := form.New(def.Initial(), schema, func(values form.Values) error {
		submitted = values
		return nil
	}, form.WithLogger(a.logger), form.WithName(def.ID))

	ctx := cmd.Context()
	if def.Title != "" {
		if err := r.Info(ctx, def.Title); err != nil {
			return err
		}
	}
	if err := tui.Fill(ctx, r, c, tui.PromptsFor(def)); err != nil {
		return err
	}
	return a.write(cmd.OutOrStdout(), map[string]any(submitted))
}
