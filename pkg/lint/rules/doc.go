// Package rules contains the built-in lint rules for gopylint.
//
// Rule IDs follow the conventions of the Python lint ecosystem
// (pycodestyle E/W, pyflakes F, flake8-comprehensions C, pep8-naming N),
// so existing per-rule muscle memory and config files carry over.
//
// Rules register themselves with lint.DefaultRegistry during init.
package rules
