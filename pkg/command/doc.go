// Package command implements the workflow command protocol: a line-oriented way for a
// process to pass structured signals to the orchestrator that supervises it.
//
// # Workflow Command Format
//
// # Overview
//
// Goals:
//
//  1. One command per line, so the orchestrator can scan stdout line by line
//  2. Any text can be carried as payload or property value without breaking the line
//  3. Ordinary program output stays ordinary output
//  4. A process can switch command parsing off and back on
//
// # Format Specification
//
// Each command line follows this format:
//
//	::command key1=value1,key2=value2::payload\n
//
// The property section (a space followed by comma separated key=value pairs) is omitted
// when there are no properties:
//
//	::command::payload\n
//
// # Fields
//
//   - command: one of add-mask, add-path, set-output, set-env, save-state, stop-commands,
//     debug, error, warning, or the resume token of a previous stop-commands.
//   - properties: key=value pairs, joined by commas. Values are property-escaped.
//   - payload: data-escaped text. May be empty.
//
// # Escaping
//
// Data (payload):
//
//	%  -> %25
//	\r -> %0D
//	\n -> %0A
//
// Properties additionally escape the property list delimiters:
//
//	:  -> %3A
//	,  -> %2C
//
// The percent sign is escaped first, so the percent signs introduced by the later
// replacements are never escaped twice.
//
// # Examples
//
//	::set-output name=greeting::hello
//	::add-mask::super secret message
//	::error file=/test/file.rs,line=5,col=10::hello
//	::warning::hello
//
// # Stop and resume
//
// A process that prints untrusted text can stop command processing:
//
//	::stop-commands::3c5a9e26-2cf8-4c0e-a8b4-6d5d1c9c1f0e
//	::set-output name=ignored::this line is plain output
//	::3c5a9e26-2cf8-4c0e-a8b4-6d5d1c9c1f0e::
//
// Everything between the two lines is plain output. The resume line is a command whose
// name is the token given to stop-commands.
package command
