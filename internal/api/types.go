package api

// Parameter is a key/value setting on a tag, trigger, or variable.
type Parameter struct {
	Type  string      `json:"type,omitempty"`
	Key   string      `json:"key,omitempty"`
	Value string      `json:"value,omitempty"`
	List  []Parameter `json:"list,omitempty"`
	Map   []Parameter `json:"map,omitempty"`
}

// Account is a Tag Manager account.
type Account struct {
	Path          string `json:"path,omitempty"`
	AccountID     string `json:"accountId,omitempty"`
	Name          string `json:"name,omitempty"`
	ShareData     bool   `json:"shareData,omitempty"`
	Fingerprint   string `json:"fingerprint,omitempty"`
	TagManagerURL string `json:"tagManagerUrl,omitempty"`
}

// Container is a Tag Manager container within an account.
type Container struct {
	Path          string   `json:"path,omitempty"`
	AccountID     string   `json:"accountId,omitempty"`
	ContainerID   string   `json:"containerId,omitempty"`
	Name          string   `json:"name,omitempty"`
	PublicID      string   `json:"publicId,omitempty"`
	UsageContext  []string `json:"usageContext,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Fingerprint   string   `json:"fingerprint,omitempty"`
	TagManagerURL string   `json:"tagManagerUrl,omitempty"`
}

// Workspace is an editing workspace within a container.
type Workspace struct {
	Path        string `json:"path,omitempty"`
	AccountID   string `json:"accountId,omitempty"`
	ContainerID string `json:"containerId,omitempty"`
	WorkspaceID string `json:"workspaceId,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Tag is a tag within a workspace.
type Tag struct {
	Path            string      `json:"path,omitempty"`
	AccountID       string      `json:"accountId,omitempty"`
	ContainerID     string      `json:"containerId,omitempty"`
	WorkspaceID     string      `json:"workspaceId,omitempty"`
	TagID           string      `json:"tagId,omitempty"`
	Name            string      `json:"name,omitempty"`
	Type            string      `json:"type,omitempty"`
	Parameter       []Parameter `json:"parameter,omitempty"`
	FiringTriggerID []string    `json:"firingTriggerId,omitempty"`
	BlockingTrigger []string    `json:"blockingTriggerId,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Paused          bool        `json:"paused,omitempty"`
	Fingerprint     string      `json:"fingerprint,omitempty"`
}

// Trigger is a trigger within a workspace.
type Trigger struct {
	Path        string      `json:"path,omitempty"`
	AccountID   string      `json:"accountId,omitempty"`
	ContainerID string      `json:"containerId,omitempty"`
	WorkspaceID string      `json:"workspaceId,omitempty"`
	TriggerID   string      `json:"triggerId,omitempty"`
	Name        string      `json:"name,omitempty"`
	Type        string      `json:"type,omitempty"`
	Filter      []Condition `json:"filter,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`
}

// Condition is a trigger filter condition.
type Condition struct {
	Type      string      `json:"type,omitempty"`
	Parameter []Parameter `json:"parameter,omitempty"`
}

// Variable is a variable within a workspace.
type Variable struct {
	Path        string      `json:"path,omitempty"`
	AccountID   string      `json:"accountId,omitempty"`
	ContainerID string      `json:"containerId,omitempty"`
	WorkspaceID string      `json:"workspaceId,omitempty"`
	VariableID  string      `json:"variableId,omitempty"`
	Name        string      `json:"name,omitempty"`
	Type        string      `json:"type,omitempty"`
	Parameter   []Parameter `json:"parameter,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`
}

// VersionHeader is the lightweight listing form of a container version.
type VersionHeader struct {
	Path               string `json:"path,omitempty"`
	AccountID          string `json:"accountId,omitempty"`
	ContainerID        string `json:"containerId,omitempty"`
	ContainerVersionID string `json:"containerVersionId,omitempty"`
	Name               string `json:"name,omitempty"`
	Deleted            bool   `json:"deleted,omitempty"`
	NumTags            string `json:"numTags,omitempty"`
	NumTriggers        string `json:"numTriggers,omitempty"`
	NumVariables       string `json:"numVariables,omitempty"`
}

// Version is a full container version.
type Version struct {
	Path               string     `json:"path,omitempty"`
	AccountID          string     `json:"accountId,omitempty"`
	ContainerID        string     `json:"containerId,omitempty"`
	ContainerVersionID string     `json:"containerVersionId,omitempty"`
	Name               string     `json:"name,omitempty"`
	Description        string     `json:"description,omitempty"`
	Deleted            bool       `json:"deleted,omitempty"`
	Tag                []Tag      `json:"tag,omitempty"`
	Trigger            []Trigger  `json:"trigger,omitempty"`
	Variable           []Variable `json:"variable,omitempty"`
	Fingerprint        string     `json:"fingerprint,omitempty"`
}

// Environment is a container environment (live, latest, or custom preview).
type Environment struct {
	Path          string `json:"path,omitempty"`
	AccountID     string `json:"accountId,omitempty"`
	ContainerID   string `json:"containerId,omitempty"`
	EnvironmentID string `json:"environmentId,omitempty"`
	Type          string `json:"type,omitempty"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	URL           string `json:"url,omitempty"`
	Fingerprint   string `json:"fingerprint,omitempty"`
}

// PublishResult is the response of publishing a container version.
type PublishResult struct {
	ContainerVersion *Version `json:"containerVersion,omitempty"`
	CompilerError    bool     `json:"compilerError,omitempty"`
}

// CreateVersionResult is the response of creating a version from a workspace.
type CreateVersionResult struct {
	ContainerVersion *Version `json:"containerVersion,omitempty"`
	SyncStatus       any      `json:"syncStatus,omitempty"`
	CompilerError    bool     `json:"compilerError,omitempty"`
}
