// Package scaffold materializes a new project directory from a catalog
// template: it clones the template's repository, strips the clone's .git
// directory, and rewrites the name in package.json.
//
// Steps run strictly in order and the first failure aborts the run. Nothing
// is rolled back: a successful clone stays on disk even if a later step fails.
package scaffold
