package github

// SetRawBaseURL points manifest downloads at a test server.
func (r *GitHubManifestRepository) SetRawBaseURL(url string) {
	r.rawBaseURL = url
}

// ParseRepoURL exports parseRepoURL for testing.
var ParseRepoURL = parseRepoURL //nolint:gochecknoglobals // test export

// BranchCandidates exports branchCandidates for testing.
var BranchCandidates = branchCandidates //nolint:gochecknoglobals // test export
