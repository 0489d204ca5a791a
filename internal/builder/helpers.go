package builder

// CloneConfig returns a deep copy of the configuration tree. Mutating the
// copy never affects the original, which keeps editor reads safe to hand to
// renderers.
func CloneConfig(src *ScreenConfig) *ScreenConfig {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Sections = cloneSections(src.Sections)
	return &copied
}

func cloneSections(src []*Section) []*Section {
	if src == nil {
		return nil
	}
	out := make([]*Section, len(src))
	for i, section := range src {
		out[i] = cloneSection(section)
	}
	return out
}

func cloneSection(src *Section) *Section {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Settings = cloneSettings(src.Settings)
	if src.Items != nil {
		copied.Items = make([]*Item, len(src.Items))
		for i, item := range src.Items {
			copied.Items[i] = cloneItem(item)
		}
	}
	return &copied
}

func cloneItem(src *Item) *Item {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Content = cloneContent(src.Content)
	return &copied
}

func cloneSettings(src *SectionSettings) *SectionSettings {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Extra = cloneMap(src.Extra)
	return &copied
}

func cloneContent(src *ItemContent) *ItemContent {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Tags = cloneStrings(src.Tags)
	copied.Extra = cloneMap(src.Extra)
	return &copied
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneMap(typed)
		case []any:
			copied := make([]any, len(typed))
			for i, entry := range typed {
				if nested, ok := entry.(map[string]any); ok {
					copied[i] = cloneMap(nested)
				} else {
					copied[i] = entry
				}
			}
			out[key] = copied
		default:
			out[key] = value
		}
	}
	return out
}
