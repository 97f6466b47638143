package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/ctxlog"
	"github.com/vk/botplan/internal/fsutil"
	"github.com/vk/botplan/internal/planerr"
	"github.com/vk/botplan/internal/schema"
)

// Loader reads one or more .hcl template files and translates them into
// the format-agnostic document model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the template at path, which may be a single file or a
// directory of .hcl files. Files in a directory are merged into one
// Document in lexical path order, so the merge is deterministic.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, &planerr.ParseError{Message: fmt.Sprintf("cannot read template path %q", path), Err: err}
	}

	var files []string
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, &planerr.ParseError{Message: fmt.Sprintf("cannot scan template directory %q", path), Err: err}
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}
	if len(files) == 0 {
		return nil, &planerr.ParseError{Message: fmt.Sprintf("no .hcl files found under %q", path)}
	}
	logger.Debug("Loading template files.", "count", len(files))

	var resources []*config.Resource
	var outputs []*config.Output
	seenResources := make(map[string]hcl.Range)
	seenOutputs := make(map[string]hcl.Range)

	for _, file := range files {
		f, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, &planerr.ParseError{Message: fmt.Sprintf("invalid HCL in %s", file), Err: diags}
		}

		content, diags := f.Body.Content(schema.DocumentSchema)
		if diags.HasErrors() {
			return nil, &planerr.ParseError{Message: fmt.Sprintf("unsupported document structure in %s", file), Err: diags}
		}

		for _, block := range content.Blocks {
			switch block.Type {
			case "resource":
				res, err := l.translateResource(block)
				if err != nil {
					return nil, err
				}
				if prev, dup := seenResources[res.ID()]; dup {
					return nil, &planerr.ParseError{Message: fmt.Sprintf(
						"duplicate resource %q at %s (first declared at %s)", res.ID(), res.DeclRange, prev)}
				}
				seenResources[res.ID()] = res.DeclRange
				resources = append(resources, res)
			case "output":
				out, err := l.translateOutput(block)
				if err != nil {
					return nil, err
				}
				if prev, dup := seenOutputs[out.Name]; dup {
					return nil, &planerr.ParseError{Message: fmt.Sprintf(
						"duplicate output %q at %s (first declared at %s)", out.Name, out.DeclRange, prev)}
				}
				seenOutputs[out.Name] = out.DeclRange
				outputs = append(outputs, out)
			}
		}
	}

	if len(resources) == 0 {
		return nil, &planerr.ParseError{Message: "document declares no resources"}
	}

	logger.Debug("Template loaded.", "resources", len(resources), "outputs", len(outputs))
	return config.NewDocument(resources, outputs), nil
}
