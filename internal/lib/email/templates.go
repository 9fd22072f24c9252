package email

// Template names an embedded templates/<name>.html file.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

// PreviewData holds sample values for every template variable, keyed by
// template name.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Ada",
	},
}
