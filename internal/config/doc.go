// Package config defines the format-agnostic description of an evacuation
// area (nodes, their distances, explicit edges and saved queries) along with
// the Loader interface that fills it in from files.
//
// The app package applies a Model to a planner session; concrete loaders,
// such as the HCL one, live in their own packages.
package config
