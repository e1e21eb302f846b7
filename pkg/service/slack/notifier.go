package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
)

// Notifier posts completed leads to a Slack channel
type Notifier struct {
	api     *slack.Client
	channel string
}

var _ interfaces.LeadNotifier = &Notifier{}

// Option is a functional option for Notifier configuration
type Option func(*notifierConfig)

type notifierConfig struct {
	apiOptions []slack.Option
}

// WithAPIURL points the client at another Slack API endpoint
func WithAPIURL(url string) Option {
	return func(c *notifierConfig) {
		c.apiOptions = append(c.apiOptions, slack.OptionAPIURL(url))
	}
}

// New creates a Notifier posting to channel with the bot token
func New(token, channel string, opts ...Option) *Notifier {
	var cfg notifierConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Notifier{
		api:     slack.New(token, cfg.apiOptions...),
		channel: channel,
	}
}

// NotifyLead posts a summary of lead
func (n *Notifier) NotifyLead(ctx context.Context, lead *model.Lead) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(leadFallbackText(lead), false),
		slack.MsgOptionBlocks(leadBlocks(lead)...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post lead notification",
			goerr.V("channel", n.channel), goerr.V("lead_id", lead.ID))
	}
	return nil
}

func leadFallbackText(lead *model.Lead) string {
	return fmt.Sprintf("New lead from %s (score %d)", lead.Domain, lead.Score)
}

func leadBlocks(lead *model.Lead) []slack.Block {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("New lead: %s", lead.Domain), false, false),
	)

	challenges := make([]string, 0, len(lead.Challenges))
	for _, c := range lead.Challenges {
		challenges = append(challenges, c.String())
	}
	if len(challenges) == 0 {
		challenges = append(challenges, "-")
	}

	fields := []*slack.TextBlockObject{
		mrkdwnField("Score", fmt.Sprintf("%d / 100", lead.Score)),
		mrkdwnField("Industry", lead.Industry.String()),
		mrkdwnField("Company size", lead.CompanySize.String()),
		mrkdwnField("Role", lead.Role.String()),
		mrkdwnField("Email", lead.Email),
		mrkdwnField("Challenges", strings.Join(challenges, ", ")),
	}
	if lead.Phone != "" {
		fields = append(fields, mrkdwnField("Phone", lead.Phone))
	}

	blocks := []slack.Block{
		header,
		slack.NewSectionBlock(nil, fields, nil),
	}

	if p := lead.DomainProfile; p != nil {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("MX: %s | SPF: %s | DMARC: %s", yesNo(p.HasMail()), yesNo(p.HasSPF()), yesNo(p.HasDMARC())),
				false, false),
		))
	}

	return blocks
}

func mrkdwnField(name, value string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*\n%s", name, value), false, false)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
