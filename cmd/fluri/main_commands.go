package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aofei/fluri"
)

type cmdMain struct{}

func (c *cmdMain) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "fluri"
	cmd.Short = "URL builder"
	cmd.Long = `Description:
  URL builder

  This tool builds http(s), file, ftp(s), sftp, data, telnet and mailto URLs
  from record files and named templates, and parses http(s) URLs into records.
`

	return cmd
}

type cmdParse struct {
	global *cmdGlobal

	flagFormat string
}

func (c *cmdParse) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "parse <url>"
	cmd.Short = "Parse an http(s) URL into a record"
	cmd.Example = `  fluri parse "https://www.example.com/users/{id}?tab=repos" --format json`
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = c.Run
	cmd.Flags().StringVarP(&c.flagFormat, "format", "f", "yaml", "Output format (json, yaml, toml, msgpack or protobuf)")

	return cmd
}

func (c *cmdParse) Run(cmd *cobra.Command, args []string) error {
	scheme := fluri.HTTP
	if strings.HasPrefix(args[0], fluri.HTTPS.Prefix()) {
		scheme = fluri.HTTPS
	}

	u, err := fluri.Build(scheme).Parse(args[0])
	if err != nil {
		return err
	}

	b, err := fluri.MarshalRecord(c.flagFormat, fluri.RecordOf(u))
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(b)
	return err
}

type cmdBuild struct {
	global *cmdGlobal
}

func (c *cmdBuild) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "build <record-file>"
	cmd.Short = "Build the URL described by a record file"
	cmd.Long = `Description:
  Build the URL described by a record file

  The format of the record file is taken from its extension: .json, .yaml,
  .yml, .toml, .msgpack or .pb (protobuf).
`
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdBuild) Run(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	rec, err := fluri.UnmarshalRecord(filepath.Ext(args[0]), b)
	if err != nil {
		return err
	}

	u, err := rec.URL()
	if err != nil {
		return err
	}

	s, err := u.Build(c.global.flagEncode)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), s)

	return nil
}

type cmdRender struct {
	global *cmdGlobal

	flagConfig    string
	flagTemplates string
}

func (c *cmdRender) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "render <name> [<key>=<value>...]"
	cmd.Short = "Render a named URL template"
	cmd.Example = `  fluri render user id=42 --templates templates.toml`
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = c.Run
	cmd.Flags().StringVarP(&c.flagConfig, "config", "c", "", "Config file")
	cmd.Flags().StringVarP(&c.flagTemplates, "templates", "t", "", "Template file (overrides the config file)")

	return cmd
}

func (c *cmdRender) Run(cmd *cobra.Command, args []string) error {
	r, err := c.registry(cmd)
	if err != nil {
		return err
	}

	defer r.Close()

	params := map[string]string{}
	for _, arg := range args[1:] {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("Invalid parameter %q, expected <key>=<value>", arg)
		}

		params[k] = v
	}

	s, err := r.Render(args[0], params, c.global.flagEncode)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), s)

	return nil
}

// registry returns the loaded registry. The --templates file replaces the
// template file of the config file, watcher included.
func (c *cmdRender) registry(cmd *cobra.Command) (*fluri.Registry, error) {
	r := fluri.NewRegistry()
	r.LoggerOutput = cmd.ErrOrStderr()
	r.LoggerLowestLevel = fluri.LoggerLevelWarn
	r.ConfigFile = c.flagConfig

	err := r.Load()
	if err != nil {
		return nil, err
	}

	if c.flagTemplates == "" {
		return r, nil
	}

	// Stop watching the template file of the config file
	err = r.Close()
	if err != nil {
		return nil, err
	}

	r.ConfigFile = ""
	r.TemplateFile = c.flagTemplates
	err = r.Load()
	if err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}
