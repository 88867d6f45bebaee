package pipelines

// Info describes a built-in pipeline for the list command.
type Info struct {
	Name        string
	Description string
	Args        []string
	Optional    []string
}

// All lists the pipelines compiled into the binary, in display order.
func All() []Info {
	return []Info{
		{
			Name:        "content",
			Description: "Create content (research → write → image → save)",
			Args:        []string{"topic"},
			Optional:    []string{"--type"},
		},
		{
			Name:        "newsletter",
			Description: "Create newsletter (data → analyze → write → draft)",
			Args:        []string{"topic"},
			Optional:    []string{"--spreadsheet", "--range", "--to"},
		},
	}
}
