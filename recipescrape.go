// Package recipescrape turns arbitrary recipe web pages into normalized
// recipe records. It reconciles recipe-plugin markup, data-attribute
// markup, embedded linked data and unstructured HTML, and parses free-form
// ingredient text into typed quantity, unit and name fields.
//
// This package contains domain types, interfaces and the text-parsing
// engine following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// goquery/, sqlite/, gemini/).
package recipescrape
