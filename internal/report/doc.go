// Package report renders sweep results as line-chart figures on disk.
//
// A [Figure] is backend independent. [Build] turns a sweep into one figure
// per facet value, and a [Backend] draws each figure:
//
//   - "gonum": gonum.org/v1/plot, PNG or SVG
//   - "gochart": go-chart, PNG or SVG
package report
