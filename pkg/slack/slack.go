/*
copyright 2020 the Goployer authors

licensed under the apache license, version 2.0 (the "license");
you may not use this file except in compliance with the license.
you may obtain a copy of the license at

    http://www.apache.org/licenses/license-2.0

unless required by applicable law or agreed to in writing, software
distributed under the license is distributed on an "as is" basis,
without warranties or conditions of any kind, either express or implied.
see the license for the specific language governing permissions and
limitations under the license.
*/

package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/DevopsArtFactory/goscaler/pkg/constants"
	"github.com/DevopsArtFactory/goscaler/pkg/schemas"
)

type Slack struct {
	Client     *slack.Client
	Token      string
	ChannelID  string
	WebhookURL string
	SlackOff   bool
	Color      string
}

// NewSlackClient creates new slack client
func NewSlackClient(slackOff bool) Slack {
	return Slack{
		Client:     slack.New(os.Getenv(constants.SlackToken)),
		Token:      os.Getenv(constants.SlackToken),
		WebhookURL: os.Getenv(constants.SlackWebHookURL),
		ChannelID:  os.Getenv(constants.SlackChannel),
		SlackOff:   slackOff,
		Color:      constants.DefaultSlackColor,
	}
}

type Body struct {
	Blocks      []Block      `json:"blocks,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Block struct {
	Type string `json:"type"`
	Text *Text  `json:"text,omitempty"`
}

type Text struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

type Attachment struct {
	Text   string  `json:"text"`
	Color  string  `json:"color"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// SendSimpleMessage creates and sends simple message
func (s Slack) SendSimpleMessage(message string) error {
	if !s.ValidClient() {
		return nil
	}
	if len(s.WebhookURL) > 0 {
		return s.SendMessageWithWebHook(message)
	}
	attachment := slack.Attachment{
		Text:  message,
		Color: s.Color,
	}
	msgOpt := slack.MsgOptionAttachments(attachment)

	if err := s.SendMessage(msgOpt); err != nil {
		return err
	}

	return nil
}

// SendMessageWithWebhook is for WebhookURL
func (s Slack) SendMessageWithWebHook(msg string) error {
	slackBody, _ := json.Marshal(Body{
		Attachments: []Attachment{
			{
				Text:  msg,
				Color: s.Color,
			},
		},
	})

	return sendSlackRequest(slackBody, s.WebhookURL)
}

// SendMessage really sends message with token
func (s Slack) SendMessage(msgOpt ...slack.MsgOption) error {
	channel, timestamp, text, err := s.Client.SendMessage(s.ChannelID, msgOpt...)
	if err != nil {
		return err
	}

	logrus.Debugf("channel: %s, timestamp: %s, text: %s", channel, timestamp, text)
	return nil
}

// CreateDividerSection creates a new division block
func (s Slack) CreateDividerSection() *slack.DividerBlock {
	return slack.NewDividerBlock()
}

//ValidClient validates slack variables
func (s Slack) ValidClient() bool {
	if (len(s.WebhookURL) == 0 && (len(s.Token) == 0 || len(s.ChannelID) == 0)) || s.SlackOff {
		return false
	}

	return true
}

// CreateTitleSection creates title section
func (s Slack) CreateTitleSection(text string) *slack.SectionBlock {
	txt := slack.NewTextBlockObject("mrkdwn", text, false, false)
	section := slack.NewSectionBlock(txt, nil, nil)
	return section
}

// SummaryFields returns title and value pairs of the configuration
func SummaryFields(config schemas.ProvisionConfig, steps []string) [][2]string {
	fields := [][2]string{
		{"provider", config.Provider},
	}

	if len(config.Project) > 0 {
		fields = append(fields, [2]string{"project", config.Project})
	}

	return append(fields,
		[2]string{"zone", config.Zone},
		[2]string{"source-instance", config.InstanceName},
		[2]string{"image", config.ImageName},
		[2]string{"template", fmt.Sprintf("%s (%s)", config.TemplateName, config.MachineType)},
		[2]string{"instance-group", fmt.Sprintf("%s x %d", config.GroupName, config.TargetSize)},
		[2]string{"health-check", fmt.Sprintf("%s :%d%s", config.HealthCheck.Name, config.HealthCheck.Port, config.HealthCheck.RequestPath)},
		[2]string{"backend-service", config.BackendServiceName},
		[2]string{"steps", strings.Join(steps, ",")},
	)
}

func summaryTitle(config schemas.ProvisionConfig) string {
	return fmt.Sprintf("*[ %s ] Provisioning has been started*", config.Application)
}

// SendSummaryMessage sends summary of provisioning
func (s Slack) SendSummaryMessage(config schemas.ProvisionConfig, steps []string) error {
	if !s.ValidClient() {
		return nil
	}

	if len(s.WebhookURL) > 0 {
		return s.SendSummaryMessageWithWebHook(config, steps)
	}

	var msgOpts []slack.MsgOption

	msgOpts = append(msgOpts, slack.MsgOptionBlocks(
		s.CreateTitleSection(summaryTitle(config)),
		s.CreateDividerSection(),
	))

	var fields []slack.AttachmentField
	for _, d := range SummaryFields(config, steps) {
		fields = append(fields, slack.AttachmentField{
			Title: d[0],
			Value: d[1],
			Short: true,
		})
	}

	msgOpts = append(msgOpts, slack.MsgOptionAttachments(slack.Attachment{
		Color:  s.Color,
		Text:   "`These are configurations that are applied to this provisioning.`",
		Fields: fields,
	}))

	return s.SendMessage(msgOpts...)
}

// SendSummaryMessageWithWebHook sends summary message
func (s Slack) SendSummaryMessageWithWebHook(config schemas.ProvisionConfig, steps []string) error {
	var fields []Field
	for _, d := range SummaryFields(config, steps) {
		fields = append(fields, Field{
			Title: d[0],
			Value: d[1],
			Short: true,
		})
	}

	slackBody, _ := json.Marshal(Body{
		Blocks: []Block{
			{
				Type: "section",
				Text: &Text{
					Type: "mrkdwn",
					Text: summaryTitle(config),
				},
			},
			{
				Type: "divider",
			},
		},
		Attachments: []Attachment{
			{
				Color:  s.Color,
				Text:   "`These are configurations that are applied to this provisioning.`",
				Fields: fields,
			},
		},
	})

	return sendSlackRequest(slackBody, s.WebhookURL)
}

// sendSlackRequest sends request for slack message
func sendSlackRequest(slackBody []byte, url string) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(slackBody))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if buf.String() != "ok" {
		return errors.New("non-ok response returned from Slack")
	}

	return nil
}
