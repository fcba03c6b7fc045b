// Package php walks tree-sitter PHP parse trees and extracts the syntactic
// facts the call-graph builder needs: class/trait/interface declarations, method
// definitions and return types, property types (including
// constructor-promoted and static properties), call sites, and local
// variable assignments.
//
// Every walker takes a *sitter.Node plus the originating source bytes and
// returns a plain Go value — the same shape the teacher's graph/golang and
// graph/java walkers use (ChildByFieldName + Content(sourceCode)), just
// aimed at PHP's grammar instead of Go's or Java's.
package php
