package editing

// Edit operations exposed by the stable-image edit endpoint family.
const (
	OpErase             = "erase"
	OpInpaint           = "inpaint"
	OpOutpaint          = "outpaint"
	OpSearchAndReplace  = "search-and-replace"
	OpSearchAndRecolor  = "search-and-recolor"
	OpRemoveBackground  = "remove-background"
	OpReplaceBackground = "replace-background-and-relight"
)

// OperationInfo describes one edit operation for listings.
type OperationInfo struct {
	ID          string
	Name        string
	Description string
}

// GetOperationInfo returns information about an edit operation
func GetOperationInfo(op string) OperationInfo {
	ops := map[string]OperationInfo{
		OpErase: {
			ID:          OpErase,
			Name:        "Erase",
			Description: "Remove unwanted objects using an optional mask",
		},
		OpInpaint: {
			ID:          OpInpaint,
			Name:        "Inpaint",
			Description: "Fill in or replace masked areas from a prompt",
		},
		OpOutpaint: {
			ID:          OpOutpaint,
			Name:        "Outpaint",
			Description: "Extend an image in any direction",
		},
		OpSearchAndReplace: {
			ID:          OpSearchAndReplace,
			Name:        "Search and Replace",
			Description: "Replace objects located by a search prompt",
		},
		OpSearchAndRecolor: {
			ID:          OpSearchAndRecolor,
			Name:        "Search and Recolor",
			Description: "Recolor objects located by a select prompt",
		},
		OpRemoveBackground: {
			ID:          OpRemoveBackground,
			Name:        "Remove Background",
			Description: "Segment the foreground and make the background transparent",
		},
		OpReplaceBackground: {
			ID:          OpReplaceBackground,
			Name:        "Replace Background and Relight",
			Description: "Swap the background and adjust lighting to match",
		},
	}

	if info, ok := ops[op]; ok {
		return info
	}
	return OperationInfo{ID: op, Name: "Unknown Operation"}
}
