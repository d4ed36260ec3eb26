// Package ballpiterr defines the enumerated error codes surfaced by
// package engine, mirroring the original controller's error table.
package ballpiterr

import "fmt"

// Code is one of the enumerated integer error/warning codes of
// SPEC_FULL.md §6.
type Code int

const (
	CodeUnidentified Code = 0

	// 1xx: invalid input.
	CodeImportFailed          Code = 100
	CodeInvalidRadiusFile     Code = 101
	CodeInvalidStructureFile  Code = 102
	CodeInvalidFileFormat     Code = 103
	CodeInvalidProbeRadius    Code = 104
	CodeInvalidEntrySkipped   Code = 105
	CodeInvalidElementSymbol  Code = 106
	CodeInvalidRadiusValue    Code = 107

	// 11x: unit-cell issues.
	CodeSpaceGroupNotFound    Code = 111
	CodeInvalidUnitCellParams Code = 112
	CodeSymmetryNotFound      Code = 113
	CodeInvalidAtomLine       Code = 114
	CodeInvalidOptions        Code = 115

	// 2xx: calculation issues.
	CodeCalculationFailed Code = 200
	CodeCavityOverflow    Code = 201

	// 3xx: output issues.
	CodeOutputFailed       Code = 300
	CodeExportDataMissing  Code = 301
	CodeInvalidOutputDir   Code = 302
	CodeSurfaceMapFailed   Code = 303

	// 9xx: command-line issues.
	CodeCLIFailed        Code = 900
	CodeCLIArgumentMissing Code = 901
)

// messages mirrors original_source/src/controller.cpp's s_error_codes
// table verbatim.
var messages = map[Code]string{
	CodeUnidentified: "Unidentified error code.",

	CodeImportFailed:         "Import failed!",
	CodeInvalidRadiusFile:    "Invalid radius definition file. Please select a valid file or set radii manually.",
	CodeInvalidStructureFile: "Invalid structure file. Please select a valid file. You may need to enable the option HETATM.",
	CodeInvalidFileFormat:    "Invalid file format. Please make sure that the input files have the correct file extensions.",
	CodeInvalidProbeRadius:   "Invalid probe radius input. The large probe must have a larger radius than the small probe.",
	CodeInvalidEntrySkipped:  "Invalid entry in structure file encountered. Some atoms have not been imported. Please check the format of the input file.",
	CodeInvalidElementSymbol: "Invalid element symbol(s) in radius file detected. Some radii may be assigned incorrectly. Please make sure that all element symbols begin with an alphabetic character.",
	CodeInvalidRadiusValue:   "Invalid radius value in radius file detected. Some radii may be set to 0. Please make sure that all radii are numeric.",

	CodeSpaceGroupNotFound:    "Space group not found. Check the structure file, or untick the Unit Cell Analysis tickbox.",
	CodeInvalidUnitCellParams: "Invalid unit cell parameters. Check the structure file, or untick the Unit Cell Analysis tickbox.",
	CodeSymmetryNotFound:      "Space group or symmetry not found. Check the structure and space group files or untick the Unit Cell Analysis tickbox",
	CodeInvalidAtomLine:       "Invalid ATOM or HETATM line encountered. Import may be incomplete. Check the structure file.",
	CodeInvalidOptions:        "Invalid option(s). You may have selected an option that is incompatible with the structure file format.",

	CodeCalculationFailed: "Calculation failed!",
	CodeCavityOverflow:    "Total number of cavities (255) exceeded. Consider changing the probe size. Calculation will proceed.",

	CodeOutputFailed:      "Output failed!",
	CodeExportDataMissing: "Data missing to export file. Calculation may be still running or has not been started.",
	CodeInvalidOutputDir:  "Invalid output directory. Please select a valid output directory.",
	CodeSurfaceMapFailed:  "An unidentified issue has been encountered while writing the surface map.",

	CodeCLIFailed:          "Command line interface failed!",
	CodeCLIArgumentMissing: "At least one required command line argument missing.",
}

// Message returns the human-readable text for code, falling back to the
// CodeUnidentified message for any code not in the table.
func Message(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[CodeUnidentified]
}

// Error is the fatal-to-run error type returned by engine.Run. It always
// carries one of the enumerated Codes; Unwrap exposes an underlying cause
// when the code was raised in response to another error (e.g. a malformed
// parameter value).
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New constructs an Error for code, using the table's canonical message.
func New(code Code) *Error {
	return &Error{Code: code, Message: Message(code)}
}

// Wrap constructs an Error for code that wraps cause.
func Wrap(code Code, cause error) *Error {
	return &Error{Code: code, Message: Message(code), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }
