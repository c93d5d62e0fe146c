package discovery

// Action describes one operation an integration exposes, normalized from
// the provider's wire shape. All fields are defensively defaulted: a
// malformed item yields empty strings, an empty parameter map, and an
// empty tag list rather than an error.
type Action struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	App         string         `json:"appName"`
	Tags        []string       `json:"tags"`
}

// appItem is one connected-integration item as the provider sends it. The
// provider is inconsistent about which field carries the integration name,
// so all three observed variants are decoded.
type appItem struct {
	Name    string `json:"name"`
	AppName string `json:"appName"`
	Slug    string `json:"slug"`
}

// id returns the integration name, preferring name over appName over slug.
// Empty when the item carries none of them.
func (it appItem) id() string {
	switch {
	case it.Name != "":
		return it.Name
	case it.AppName != "":
		return it.AppName
	default:
		return it.Slug
	}
}

// normalizeApps flattens connected-integration items into a list of names,
// dropping items that carry no usable name at all.
func normalizeApps(items []appItem) []string {
	apps := make([]string, 0, len(items))
	for _, it := range items {
		if id := it.id(); id != "" {
			apps = append(apps, id)
		}
	}
	return apps
}

// actionItem is one action as the provider sends it.
type actionItem struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
	AppName     string         `json:"appName"`
	Tags        []string       `json:"tags"`
}

// normalizeActions coalesces provider action items into Actions. app is the
// integration the caller asked about; it backfills items that omit their
// owner, and a missing display name falls back to the action name.
func normalizeActions(items []actionItem, app string) []Action {
	actions := make([]Action, 0, len(items))
	for _, it := range items {
		a := Action{
			Name:        it.Name,
			DisplayName: it.DisplayName,
			Description: it.Description,
			Parameters:  it.Parameters,
			App:         it.AppName,
			Tags:        it.Tags,
		}
		if a.DisplayName == "" {
			a.DisplayName = a.Name
		}
		if a.App == "" {
			a.App = app
		}
		if a.Parameters == nil {
			a.Parameters = map[string]any{}
		}
		if a.Tags == nil {
			a.Tags = []string{}
		}
		actions = append(actions, a)
	}
	return actions
}
