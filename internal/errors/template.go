package errors

// errorTemplate renders a detailed error for the terminal. The resolution is optional.
const errorTemplate = `{{.Type}}: {{.Title}}

{{.Description}}
{{- if .Resolution}}

{{.Resolution}}
{{- end}}
`

type detailedError interface {
	Description() string
	Error() string
	Resolution() string
	Type() string
}

type templateVariables struct {
	Title       string
	Type        string
	Description string
	Resolution  string
}

func (t templateVariables) Validate() error {
	if t.Title == "" {
		return NewInternalError("error message is missing a title")
	}

	if t.Type == "" {
		return NewInternalError("error message is missing a type")
	}

	if t.Description == "" {
		return NewInternalError("error message is missing a description")
	}

	return nil
}
