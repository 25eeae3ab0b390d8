package filekind

// Kind is the closed content-kind enumeration for files.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindDocx  Kind = "docx"
	KindXlsx  Kind = "xlsx"
	KindMd    Kind = "md"
	KindImage Kind = "image"
	KindTxt   Kind = "txt"
)

// Definition describes one content kind as loaded from the embedded
// YAML file.
type Definition struct {
	// Kind identifier (set during YAML unmarshaling from the map key)
	ID Kind `yaml:"-" json:"id"`

	DisplayName string   `yaml:"display_name" json:"display_name"`
	Extensions  []string `yaml:"extensions" json:"extensions"` // lowercase, without the dot
	MimeType    string   `yaml:"mime_type" json:"mime_type"`
	// Editable kinds (md, docx) support in-app content editing.
	Editable bool `yaml:"editable" json:"editable"`
}

// kindsFile is the YAML document shape.
type kindsFile struct {
	Kinds map[Kind]Definition `yaml:"kinds"`
}
