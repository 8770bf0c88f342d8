package commands

// WorkspacePatterns exports workspacePatterns for testing.
var WorkspacePatterns = workspacePatterns //nolint:gochecknoglobals // test export

// ExpandWorkspaces exports expandWorkspaces for testing.
var ExpandWorkspaces = expandWorkspaces //nolint:gochecknoglobals // test export
