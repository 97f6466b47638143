package hcl_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botplan/internal/config"
	"github.com/vk/botplan/internal/planerr"
	"github.com/vk/botplan/internal/testutil"
)

const validTemplate = `
	resource "dynamodb_table" "orders" {
		name     = "orders"
		hash_key = "OrderId"
	}

	resource "lambda_function" "lookup" {
		name       = "order-lookup"
		handler    = "function.lambda_handler"
		runtime    = "python3.12"
		role_arn   = "arn:aws:iam::123456789012:role/lookup"
		depends_on = ["dynamodb_table.orders"]
	}

	output "table_name" {
		value       = resource.dynamodb_table.orders.name
		description = "Order status table"
	}
`

func TestLoad_ValidTemplate(t *testing.T) {
	doc := testutil.LoadDocument(t, validTemplate)

	require.Len(t, doc.Resources, 2)
	require.Len(t, doc.Outputs, 1)

	// Declaration order is preserved.
	assert.Equal(t, "dynamodb_table.orders", doc.Resources[0].ID())
	assert.Equal(t, "lambda_function.lookup", doc.Resources[1].ID())

	lookup, ok := doc.Resource("lambda_function.lookup")
	require.True(t, ok)
	assert.Equal(t, []string{"dynamodb_table.orders"}, lookup.DependsOn)
	assert.Contains(t, lookup.Properties, "runtime")
	assert.NotContains(t, lookup.Properties, "depends_on", "depends_on is reserved, not a property")

	out := doc.Outputs[0]
	assert.Equal(t, "table_name", out.Name)
	assert.Equal(t, "Order status table", out.Description)
	assert.NotNil(t, out.Value)
}

func TestLoad_IsDeterministic(t *testing.T) {
	// Re-parsing the same document twice yields structurally identical
	// models.
	first := testutil.LoadDocument(t, validTemplate)
	second := testutil.LoadDocument(t, validTemplate)

	assert.Empty(t, cmp.Diff(shapeOf(first), shapeOf(second)))
}

func TestLoad_DuplicateResourceName(t *testing.T) {
	_, err := testutil.TryLoadDocument(t, `
		resource "lex_bot" "order_bot" {
			name     = "OrderBot"
			role_arn = "arn:aws:iam::123456789012:role/bot"
		}
		resource "lex_bot" "order_bot" {
			name     = "OrderBotAgain"
			role_arn = "arn:aws:iam::123456789012:role/bot"
		}
	`)

	var parseErr *planerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, `duplicate resource "lex_bot.order_bot"`)
}

func TestLoad_DuplicateOutputName(t *testing.T) {
	_, err := testutil.TryLoadDocument(t, `
		resource "lex_bot" "order_bot" {
			name = "OrderBot"
		}
		output "bot_id" {
			value = resource.lex_bot.order_bot.id
		}
		output "bot_id" {
			value = resource.lex_bot.order_bot.arn
		}
	`)

	var parseErr *planerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, `duplicate output "bot_id"`)
}

func TestLoad_MalformedHCL(t *testing.T) {
	_, err := testutil.TryLoadDocument(t, `
		resource "lex_bot" "order_bot" {
			name = "OrderBot"
		# missing closing brace
	`)

	var parseErr *planerr.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoad_UnknownTopLevelBlock(t *testing.T) {
	_, err := testutil.TryLoadDocument(t, `
		resource "lex_bot" "order_bot" {
			name = "OrderBot"
		}
		provider "aws" {
			region = "us-east-1"
		}
	`)

	var parseErr *planerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "unsupported document structure")
}

func TestLoad_NestedBlockInPropertyBag(t *testing.T) {
	_, err := testutil.TryLoadDocument(t, `
		resource "lex_bot" "order_bot" {
			name = "OrderBot"
			settings {
				locale = "en_US"
			}
		}
	`)

	var parseErr *planerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "invalid property bag")
}

func TestLoad_EmptyDocument(t *testing.T) {
	_, err := testutil.TryLoadDocument(t, `
		output "nothing" {
			value = "literal"
		}
	`)

	var parseErr *planerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "declares no resources")
}

func TestLoad_DirectoryMergesLexically(t *testing.T) {
	doc, err := testutil.LoadDocumentFiles(t, map[string]string{
		"b_second.hcl": `
			resource "lambda_function" "lookup" {
				name     = "order-lookup"
				handler  = "function.lambda_handler"
				runtime  = "python3.12"
				role_arn = "arn:aws:iam::123456789012:role/lookup"
			}
		`,
		"a_first.hcl": `
			resource "dynamodb_table" "orders" {
				name     = "orders"
				hash_key = "OrderId"
			}
		`,
	})
	require.NoError(t, err)

	require.Len(t, doc.Resources, 2)
	assert.Equal(t, "dynamodb_table.orders", doc.Resources[0].ID())
	assert.Equal(t, "lambda_function.lookup", doc.Resources[1].ID())
}

// shapeOf projects a document onto comparable structure: identities,
// property names, dependency lists, output names. Expressions themselves
// carry unexported parser state, so they are compared by field name only.
func shapeOf(doc *config.Document) map[string]any {
	resources := make([]map[string]any, 0, len(doc.Resources))
	for _, r := range doc.Resources {
		props := make([]string, 0, len(r.Properties))
		for name := range r.Properties {
			props = append(props, name)
		}
		sort.Strings(props)
		resources = append(resources, map[string]any{
			"id":         r.ID(),
			"props":      props,
			"depends_on": r.DependsOn,
		})
	}
	outputs := make([]string, 0, len(doc.Outputs))
	for _, o := range doc.Outputs {
		outputs = append(outputs, o.Name)
	}
	return map[string]any{"resources": resources, "outputs": outputs}
}
