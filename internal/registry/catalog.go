package registry

import (
	"github.com/zclconf/go-cty/cty"
)

// Builtin returns the catalog for the conversational-bot resource surface:
// the Lex-style bot, its intents, slot types, versions and aliases, plus
// the Lambda fulfillment function and DynamoDB table they lean on.
func Builtin() *Registry {
	r := New()
	for _, s := range builtinSchemas() {
		if err := r.Register(s); err != nil {
			// The builtin catalog is static data; a duplicate here is a
			// programmer error, not a user input problem.
			panic(err)
		}
	}
	return r
}

func builtinSchemas() []*ResourceSchema {
	return []*ResourceSchema{
		{
			Type: "lex_bot",
			Fields: map[string]*FieldSchema{
				"name":                     {Name: "name", Type: cty.String, Required: true},
				"description":              {Name: "description", Type: cty.String},
				"role_arn":                 {Name: "role_arn", Type: cty.String, Required: true},
				"child_directed":           {Name: "child_directed", Type: cty.Bool, Required: true},
				"idle_session_ttl_seconds": {Name: "idle_session_ttl_seconds", Type: cty.Number, Min: bound(60), Max: bound(86400)},
				"locale":                   {Name: "locale", Type: cty.String, Enum: []string{"en_US", "en_GB", "es_ES", "es_US", "de_DE", "fr_FR"}},
			},
			Attributes: map[string]cty.Type{
				"id":  cty.String,
				"arn": cty.String,
			},
		},
		{
			Type: "lex_intent",
			Fields: map[string]*FieldSchema{
				"name":                 {Name: "name", Type: cty.String, Required: true},
				"bot":                  {Name: "bot", Type: cty.String, Required: true},
				"description":          {Name: "description", Type: cty.String},
				"sample_utterances":    {Name: "sample_utterances", Type: cty.List(cty.String)},
				"fulfillment_function": {Name: "fulfillment_function", Type: cty.String},
			},
			Attributes: map[string]cty.Type{
				"id": cty.String,
			},
		},
		{
			Type: "lex_slot_type",
			Fields: map[string]*FieldSchema{
				"name":                {Name: "name", Type: cty.String, Required: true},
				"bot":                 {Name: "bot", Type: cty.String, Required: true},
				"values":              {Name: "values", Type: cty.List(cty.String), Required: true},
				"resolution_strategy": {Name: "resolution_strategy", Type: cty.String, Enum: []string{"ORIGINAL_VALUE", "TOP_RESOLUTION"}},
			},
			Attributes: map[string]cty.Type{
				"id": cty.String,
			},
		},
		{
			Type: "lex_bot_version",
			Fields: map[string]*FieldSchema{
				"bot":         {Name: "bot", Type: cty.String, Required: true},
				"description": {Name: "description", Type: cty.String},
			},
			Attributes: map[string]cty.Type{
				"version": cty.String,
			},
		},
		{
			Type: "lex_bot_alias",
			Fields: map[string]*FieldSchema{
				"name":        {Name: "name", Type: cty.String, Required: true},
				"bot":         {Name: "bot", Type: cty.String, Required: true},
				"bot_version": {Name: "bot_version", Type: cty.String},
			},
			Attributes: map[string]cty.Type{
				"id":  cty.String,
				"arn": cty.String,
			},
		},
		{
			Type: "lambda_function",
			Fields: map[string]*FieldSchema{
				"name":            {Name: "name", Type: cty.String, Required: true},
				"handler":         {Name: "handler", Type: cty.String, Required: true},
				"runtime":         {Name: "runtime", Type: cty.String, Required: true, Enum: []string{"python3.12", "python3.13", "nodejs20.x", "nodejs22.x"}},
				"role_arn":        {Name: "role_arn", Type: cty.String, Required: true},
				"memory_mb":       {Name: "memory_mb", Type: cty.Number, Min: bound(128), Max: bound(10240)},
				"timeout_seconds": {Name: "timeout_seconds", Type: cty.Number, Min: bound(1), Max: bound(900)},
				"environment":     {Name: "environment", Type: cty.Map(cty.String)},
			},
			Attributes: map[string]cty.Type{
				"arn":  cty.String,
				"name": cty.String,
			},
		},
		{
			Type: "dynamodb_table",
			Fields: map[string]*FieldSchema{
				"name":           {Name: "name", Type: cty.String, Required: true},
				"hash_key":       {Name: "hash_key", Type: cty.String, Required: true},
				"billing_mode":   {Name: "billing_mode", Type: cty.String, Enum: []string{"PAY_PER_REQUEST", "PROVISIONED"}},
				"read_capacity":  {Name: "read_capacity", Type: cty.Number, Min: bound(1)},
				"write_capacity": {Name: "write_capacity", Type: cty.Number, Min: bound(1)},
			},
			Attributes: map[string]cty.Type{
				"arn":  cty.String,
				"name": cty.String,
			},
		},
	}
}

func bound(v float64) *float64 {
	return &v
}
