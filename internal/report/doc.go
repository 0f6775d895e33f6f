// Package report renders match results for humans and machines.
// It provides a console writer with the decorated output the tool is known
// for, a Markdown writer for sharing, and a JSON writer for scripting.
package report
