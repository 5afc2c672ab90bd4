// Package response defines how mock endpoints answer and renders those
// answers.
//
// Spec is a closed variant with two implementations:
//
//   - Static: status, headers and body are returned unchanged.
//   - Paging: one page of a fixed item list is rendered through a JSON
//     template containing the placeholders $_contents, $_page and $_total.
//
// Adding a response type means adding one Spec implementation and one case
// in Render.
package response
