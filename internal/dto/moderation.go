package dto

type ModerationResult struct {
	Success    bool     `json:"success"`
	Removed    int      `json:"removed"`
	RemovedIDs []string `json:"removed_ids"`
}

type FlaggedTweet struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Handle  string `json:"handle"`
	Preview string `json:"preview"`
}

type ModerationStatus struct {
	Success bool           `json:"success"`
	Flagged []FlaggedTweet `json:"flagged"`
}
