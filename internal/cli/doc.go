// Package cli renders benchmark progress and results in the terminal and
// provides the interactive shell.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayQuietResults], [DisplayMemoryStats].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile].
package cli
