package codegen

// ToolName and Version identify the generator in every banner.
const (
	ToolName = "bondgen"
	Version  = "0.1.0"
)

// Banner writes the provenance header. input is the schema document name as
// it should appear in the output; callers pass a base name so the result does
// not depend on the working directory.
func Banner(w *LineWriter, input string) {
	w.Line(0, "//------------------------------------------------------------------------------")
	w.Line(0, "// This code was generated by a tool.")
	w.Line(0, "//")
	w.Line(0, "//   Tool : %s %s", ToolName, Version)
	w.Line(0, "//   File : %s", input)
	w.Line(0, "//")
	w.Line(0, "// Changes to this file may cause incorrect behavior and will be lost when")
	w.Line(0, "// the code is regenerated.")
	w.Line(0, "// <auto-generated />")
	w.Line(0, "//------------------------------------------------------------------------------")
}
