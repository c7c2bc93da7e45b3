// one-shot extraction of a local document
package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/mineru-extract/config"
	"github.com/ds124wfegd/mineru-extract/internal/action"
	"github.com/ds124wfegd/mineru-extract/internal/entity"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/logger"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/mineru"
	"github.com/ds124wfegd/mineru-extract/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// flagProps maps command line flags onto extract_content properties.
var flagProps = map[string]string{
	"api-server-url":      action.PropAPIServerURL,
	"lang":                action.PropLangList,
	"backend":             action.PropBackend,
	"server-url":          action.PropServerURL,
	"parse-method":        action.PropParseMethod,
	"formula":             action.PropFormulaEnable,
	"table":               action.PropTableEnable,
	"return-md":           action.PropReturnMD,
	"return-middle-json":  action.PropReturnMiddleJSON,
	"return-model-output": action.PropReturnModelOutput,
	"return-content-list": action.PropReturnContentList,
	"return-images":       action.PropReturnImages,
	"zip":                 action.PropResponseFormatZip,
	"start-page":          action.PropStartPageID,
	"end-page":            action.PropEndPageID,
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logrus.Fatalf("extract failed: %s", err.Error())
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)

	fs.String("api-server-url", "", "MinerU API server base URL")
	filePath := fs.String("file", "", "path of the document to parse")
	output := fs.StringP("output", "o", "", "where to write the ZIP result (default <filename>_mineru_result.zip)")
	configDir := fs.String("config", "./config", "directory holding config.yaml")

	fs.String("lang", "", "OCR language hint")
	fs.String("backend", "pipeline", "parsing backend")
	fs.String("server-url", "", "server URL for the vlm-sglang-client backend")
	fs.String("parse-method", "auto", "parse method of the pipeline backend")
	fs.Bool("formula", true, "enable formula parsing")
	fs.Bool("table", true, "enable table parsing")
	fs.Bool("return-md", true, "return markdown")
	fs.Bool("return-middle-json", false, "return middle JSON")
	fs.Bool("return-model-output", false, "return model output")
	fs.Bool("return-content-list", false, "return content list")
	fs.Bool("return-images", false, "return images")
	fs.Bool("zip", false, "return the result as a ZIP archive")
	fs.Int("start-page", 0, "first page to parse")
	fs.Int("end-page", 0, "last page to parse")

	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := config.LoadConfig(*configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return err
	}
	// stdout carries the result, logs go to stderr
	logger.Setup(cfg.Log, os.Stderr)

	if *filePath == "" {
		return fmt.Errorf("%w: --file", entity.ErrMissingParameter)
	}
	data, err := os.ReadFile(*filePath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	raw, err := changedValues(fs)
	if err != nil {
		return err
	}
	filename := filepath.Base(*filePath)
	raw[action.PropFile] = entity.FilePayload{
		Filename:  filename,
		Extension: strings.TrimPrefix(filepath.Ext(filename), "."),
		Data:      data,
	}

	values, err := action.ExtractContent(cfg.MinerU.DefaultAPIServerURL).Resolve(raw)
	if err != nil {
		return err
	}

	svc := service.NewExtractService(mineru.NewClient(cfg.MinerU.Timeout), nil)
	result, err := svc.ExtractContent(ctx, action.Input(values))
	if err != nil {
		return err
	}

	if !result.IsZip() {
		_, err = fmt.Fprintln(stdout, string(result.JSON))
		return err
	}

	archive, err := base64.StdEncoding.DecodeString(result.File.Data)
	if err != nil {
		return fmt.Errorf("decode zip: %w", err)
	}
	dest := *output
	if dest == "" {
		dest = result.File.Filename
	}
	if err := os.WriteFile(dest, archive, 0o644); err != nil {
		return fmt.Errorf("write zip: %w", err)
	}
	_, err = fmt.Fprintln(stdout, dest)
	return err
}

// changedValues returns the property values of the flags given explicitly on
// the command line, so unset flags fall back to the action defaults.
func changedValues(fs *pflag.FlagSet) (map[string]any, error) {
	raw := make(map[string]any)
	for flagName, prop := range flagProps {
		f := fs.Lookup(flagName)
		if f == nil || !f.Changed {
			continue
		}
		switch f.Value.Type() {
		case "bool":
			b, err := fs.GetBool(flagName)
			if err != nil {
				return nil, err
			}
			raw[prop] = b
		case "int":
			i, err := fs.GetInt(flagName)
			if err != nil {
				return nil, err
			}
			raw[prop] = i
		default:
			raw[prop] = f.Value.String()
		}
	}
	return raw, nil
}
