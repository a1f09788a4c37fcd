// Package interpreter evaluates reconstructed STN statements into a
// Document. Evaluation runs in two passes over the statement sequence: the
// first registers every TypeDef and reserves every binding name, the second
// binds values, constructs entities, applies getter/setter chains and
// collects the value of each bare expression statement.
//
// Only structural errors abort an evaluation. Unresolved references and
// getter misses yield runtime.Empty; unparseable literals are kept as text.
package interpreter
