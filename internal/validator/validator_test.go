package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botplan/internal/diag"
	"github.com/vk/botplan/internal/registry"
	"github.com/vk/botplan/internal/resolver"
	"github.com/vk/botplan/internal/testutil"
	"github.com/vk/botplan/internal/validator"
)

func TestValidateStructure(t *testing.T) {
	v := validator.New(registry.Builtin())

	t.Run("clean resource has no findings", func(t *testing.T) {
		doc := testutil.LoadDocument(t, `
			resource "dynamodb_table" "orders" {
				name     = "orders"
				hash_key = "OrderId"
			}
		`)

		diags := v.ValidateStructure(context.Background(), doc)
		assert.Empty(t, diags)
	})

	t.Run("unknown resource type", func(t *testing.T) {
		doc := testutil.LoadDocument(t, `
			resource "quantum_widget" "w" {
				name = "w"
			}
		`)

		diags := v.ValidateStructure(context.Background(), doc)
		require.Len(t, diags, 1)
		assert.Equal(t, diag.SeverityError, diags[0].Severity)
		assert.Equal(t, "quantum_widget.w", diags[0].Resource)
		assert.Contains(t, diags[0].Message, "unknown resource type")
	})

	t.Run("required property missing names the field", func(t *testing.T) {
		doc := testutil.LoadDocument(t, `
			resource "dynamodb_table" "orders" {
				name = "orders"
			}
		`)

		diags := v.ValidateStructure(context.Background(), doc)
		require.Len(t, diags, 1)
		assert.Equal(t, diag.SeverityError, diags[0].Severity)
		assert.Equal(t, "dynamodb_table.orders", diags[0].Resource)
		assert.Equal(t, "hash_key", diags[0].Field)
	})

	t.Run("undeclared property is a warning", func(t *testing.T) {
		doc := testutil.LoadDocument(t, `
			resource "dynamodb_table" "orders" {
				name      = "orders"
				hash_key  = "OrderId"
				made_up   = true
			}
		`)

		diags := v.ValidateStructure(context.Background(), doc)
		require.Len(t, diags, 1)
		assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
		assert.Equal(t, "made_up", diags[0].Field)
		assert.False(t, diags.HasErrors())
	})

	t.Run("all violations reported, not just the first", func(t *testing.T) {
		doc := testutil.LoadDocument(t, `
			resource "dynamodb_table" "orders" {
			}
			resource "lambda_function" "lookup" {
			}
		`)

		diags := v.ValidateStructure(context.Background(), doc)
		// dynamodb_table requires name + hash_key; lambda_function requires
		// name, handler, runtime, role_arn.
		assert.Len(t, diags.Errs(), 6)
	})
}

func TestValidateSemantics(t *testing.T) {
	v := validator.New(registry.Builtin())

	resolve := func(t *testing.T, templateHCL string) (*resolver.Resolution, diag.Diagnostics) {
		t.Helper()
		doc := testutil.LoadDocument(t, templateHCL)
		res, err := resolver.Resolve(context.Background(), doc)
		require.NoError(t, err)
		return res, v.ValidateSemantics(context.Background(), doc, res)
	}

	t.Run("enum violation", func(t *testing.T) {
		_, diags := resolve(t, `
			resource "lambda_function" "lookup" {
				name     = "order-lookup"
				handler  = "function.lambda_handler"
				runtime  = "cobol85"
				role_arn = "arn:aws:iam::123456789012:role/lookup"
			}
		`)

		require.Len(t, diags.Errs(), 1)
		assert.Equal(t, "runtime", diags.Errs()[0].Field)
		assert.Contains(t, diags.Errs()[0].Message, "not one of")
	})

	t.Run("numeric range violations", func(t *testing.T) {
		_, diags := resolve(t, `
			resource "lambda_function" "lookup" {
				name            = "order-lookup"
				handler         = "function.lambda_handler"
				runtime         = "python3.12"
				role_arn        = "arn:aws:iam::123456789012:role/lookup"
				memory_mb       = 64
				timeout_seconds = 1200
			}
		`)

		errs := diags.Errs()
		require.Len(t, errs, 2)
		assert.Equal(t, "memory_mb", errs[0].Field)
		assert.Contains(t, errs[0].Message, "below the minimum")
		assert.Equal(t, "timeout_seconds", errs[1].Field)
		assert.Contains(t, errs[1].Message, "above the maximum")
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, diags := resolve(t, `
			resource "lex_bot" "order_bot" {
				name           = "OrderBot"
				role_arn       = "arn:aws:iam::123456789012:role/bot"
				child_directed = "definitely"
			}
		`)

		require.Len(t, diags.Errs(), 1)
		assert.Equal(t, "child_directed", diags.Errs()[0].Field)
		assert.Contains(t, diags.Errs()[0].Message, "not a valid bool")
	})

	t.Run("reference-valued fields skip literal checks", func(t *testing.T) {
		_, diags := resolve(t, `
			resource "lex_bot" "order_bot" {
				name           = "OrderBot"
				role_arn       = "arn:aws:iam::123456789012:role/bot"
				child_directed = false
			}
			resource "lex_intent" "check_order" {
				name = "CheckOrderStatus"
				bot  = resource.lex_bot.order_bot.id
			}
		`)

		assert.False(t, diags.HasErrors())
	})

	t.Run("reference to undeclared target attribute", func(t *testing.T) {
		_, diags := resolve(t, `
			resource "lex_bot" "order_bot" {
				name           = "OrderBot"
				role_arn       = "arn:aws:iam::123456789012:role/bot"
				child_directed = false
			}
			resource "lex_intent" "check_order" {
				name = "CheckOrderStatus"
				bot  = resource.lex_bot.order_bot.flux_capacitance
			}
		`)

		require.Len(t, diags.Errs(), 1)
		assert.Equal(t, "lex_intent.check_order", diags.Errs()[0].Resource)
		assert.Equal(t, "bot", diags.Errs()[0].Field)
		assert.Contains(t, diags.Errs()[0].Message, `no attribute "flux_capacitance"`)
	})

	t.Run("literal-only output warns", func(t *testing.T) {
		_, diags := resolve(t, `
			resource "dynamodb_table" "orders" {
				name     = "orders"
				hash_key = "OrderId"
			}
			output "region" {
				value = "us-east-1"
			}
		`)

		require.Len(t, diags, 1)
		assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
		assert.Equal(t, "output.region", diags[0].Resource)
	})
}
