package domain

import "fmt"

// Operation identifies one of the connector's callable operations. A run
// selects a single operation and applies it to every input item.
type Operation string

const (
	OpUploadTemplate Operation = "uploadTemplate"
	OpRender         Operation = "render"
	OpGetAccountInfo Operation = "getAccountInfo"
	OpListTemplates  Operation = "listTemplates"
	OpGetTemplate    Operation = "getTemplate"
	OpUpdateTemplate Operation = "updateTemplate"
	OpDeleteTemplate Operation = "deleteTemplate"
)

// Operations lists every supported operation in a stable order.
func Operations() []Operation {
	return []Operation{
		OpUploadTemplate,
		OpRender,
		OpGetAccountInfo,
		OpListTemplates,
		OpGetTemplate,
		OpUpdateTemplate,
		OpDeleteTemplate,
	}
}

// ParseOperation maps a raw operation name onto the enum and rejects
// anything outside it.
func ParseOperation(raw string) (Operation, error) {
	switch Operation(raw) {
	case OpUploadTemplate, OpRender, OpGetAccountInfo, OpListTemplates,
		OpGetTemplate, OpUpdateTemplate, OpDeleteTemplate:
		return Operation(raw), nil
	}
	return "", fmt.Errorf("unsupported operation %q", raw)
}

func (o Operation) String() string {
	return string(o)
}
