package components

import (
	"strconv"

	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// TextField renders a labelled single-line input.
func TextField(name, label, inputType, value string, required bool) gomponents.Node {
	return Div(
		Class("form-group"),
		LabelEl(For(name), gomponents.Text(label)),
		Input(
			ID(name), Name(name), Type(inputType), Value(value),
			gomponents.If(required, Required()),
			gomponents.If(inputType == "number", Step("0.01")),
		),
	)
}

// TextArea renders a labelled multi-line input.
func TextArea(name, label, value string, rows int, required bool) gomponents.Node {
	return Div(
		Class("form-group"),
		LabelEl(For(name), gomponents.Text(label)),
		Textarea(
			ID(name), Name(name), Rows(strconv.Itoa(rows)),
			gomponents.If(required, Required()),
			gomponents.Text(value),
		),
	)
}

// ImageField renders the URL input for an image and the file picker that
// overrides it. The file input is named after the URL field with a "File"
// suffix. previewURL is the resolved form of current.
func ImageField(name, label, current, previewURL string) gomponents.Node {
	fileName := name + "File"
	return Div(
		Class("form-group image-field"),
		LabelEl(For(name), gomponents.Text(label+" URL")),
		Input(ID(name), Name(name), Type("text"), Value(current), Placeholder("https://")),
		gomponents.If(previewURL != "",
			Img(Class("image-preview"), Src(previewURL), Alt(label)),
		),
		LabelEl(For(fileName), gomponents.Text("or upload "+label)),
		Input(ID(fileName), Name(fileName), Type("file"), Accept("image/*")),
	)
}

// SubmitButton renders the form's primary action.
func SubmitButton(text string) gomponents.Node {
	return Div(
		Class("form-actions"),
		Button(Class("btn btn-primary"), Type("submit"), gomponents.Text(text)),
	)
}
