package config

// Config is the root configuration structure for eventsync.
// Serialised to ~/.eventsync/config.json.
type Config struct {
	Lark    LarkConfig    `mapstructure:"lark"    json:"lark"`
	GitHub  GitHubConfig  `mapstructure:"github"  json:"github"`
	Gateway GatewayConfig `mapstructure:"gateway" json:"gateway"`
	Audit   AuditConfig   `mapstructure:"audit"   json:"audit"`
}

// LarkConfig controls delivery to a Lark (Feishu) custom bot.
type LarkConfig struct {
	WebhookURL string `mapstructure:"webhook_url" json:"webhook_url"`
	// Secret enables signed requests when the bot has signature verification on.
	Secret string `mapstructure:"secret" json:"secret"`
	// Mentions maps a GitHub login to a Lark open ID so creators render as
	// @-mentions. Load lowercases the logins.
	Mentions map[string]string `mapstructure:"mentions" json:"mentions,omitempty"`
	// MentionsFile is a YAML file of "login: open_id" pairs. Inline Mentions win on conflict.
	MentionsFile   string `mapstructure:"mentions_file"   json:"mentions_file,omitempty"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`

	fileMentions map[string]string
}

// InlineMentions returns the mentions that did not come from MentionsFile,
// i.e. what should be written back when saving the config.
func (c LarkConfig) InlineMentions() map[string]string {
	out := make(map[string]string)
	for k, v := range c.Mentions {
		if fv, ok := c.fileMentions[k]; ok && fv == v {
			continue
		}
		out[k] = v
	}
	return out
}

// GitHubConfig holds credentials used by replay to read events back from the API.
type GitHubConfig struct {
	Token string `mapstructure:"token" json:"token"`
	// Host allows enterprise GitHub (e.g. github.mycompany.com).
	Host string `mapstructure:"host" json:"host"`
}

// GatewayConfig controls the webhook receiver started by `eventsync serve`.
type GatewayConfig struct {
	Addr string `mapstructure:"addr" json:"addr"`
	// WebhookSecret is the secret configured on the GitHub webhook; empty disables signature checks.
	WebhookSecret string `mapstructure:"webhook_secret" json:"webhook_secret"`
}

// AuditConfig controls the package audit.
type AuditConfig struct {
	// EssentialFiles overrides the default list of files every package must carry.
	EssentialFiles []string `mapstructure:"essential_files" json:"essential_files,omitempty"`
}
