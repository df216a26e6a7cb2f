// Package io reads chart definitions from files and writes pipeline reports.
//
// # Overview
//
// A chart definition is accepted in three formats, selected by file
// extension in [ImportChart] or explicitly with [Read]:
//
//   - JSON (.json): the direct encoding of [chart.Definition]
//   - TOML (.toml): the same structure with tables and arrays of tables
//   - HCL (.hcl): labeled blocks, convenient for hand-written charts
//
// All three decode into the same [chart.Definition]. Unknown fields are
// rejected in JSON and TOML so that typos do not silently drop configuration.
//
// # HCL Format
//
//	name = "sales"
//
//	dimension "region" {
//	  value_type = "string"
//	}
//
//	role "series" {
//	  required = true
//	}
//
//	role "color" {
//	  default_source_role = "series"
//	}
//
//	bindings = {
//	  series = "region"
//	  value  = { dimensions = "amount" }
//	}
//
//	panel "root" {
//	  width   = 400
//	  height  = 300
//	  margins = "5 10%"
//
//	  panel "title" {
//	    anchor = "top"
//	    content {
//	      width  = 100
//	      height = 20
//	    }
//	  }
//	}
//
// At most one top-level panel block is allowed; it becomes the root.
//
// # Reports
//
// [WriteReport] and [ExportReport] write a [pipeline.Report] as indented
// JSON, the same encoding the HTTP API returns.
package io
