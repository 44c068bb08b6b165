package notify

import "strings"

// Card is the interactive-card document accepted by Lark custom bots.
type Card struct {
	MsgType   string   `json:"msg_type"`
	Card      CardBody `json:"card"`
	Timestamp string   `json:"timestamp,omitempty"`
	Sign      string   `json:"sign,omitempty"`
}

type CardBody struct {
	Header   CardHeader    `json:"header"`
	Elements []CardElement `json:"elements"`
}

type CardHeader struct {
	Title CardText `json:"title"`
}

// CardElement is one block of the card body. Which of the slices is set
// depends on Tag: "div" uses Fields, "action" uses Actions, "note" uses Elements.
type CardElement struct {
	Tag      string       `json:"tag"`
	Fields   []CardField  `json:"fields,omitempty"`
	Actions  []CardButton `json:"actions,omitempty"`
	Elements []CardText   `json:"elements,omitempty"`
}

type CardField struct {
	IsShort bool     `json:"is_short"`
	Text    CardText `json:"text"`
}

type CardText struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

type CardButton struct {
	Tag  string   `json:"tag"`
	Text CardText `json:"text"`
	Type string   `json:"type"`
	URL  string   `json:"url"`
}

// BuildCard renders msg as a card. The button block is present only when msg
// has a URL, the creator note only when it has a Creator.
func BuildCard(msg Message, mentions map[string]string) Card {
	elements := []CardElement{{
		Tag: "div",
		Fields: []CardField{{
			IsShort: false,
			Text:    CardText{Tag: "lark_md", Content: msg.Content},
		}},
	}}
	if msg.URL != "" {
		elements = append(elements, CardElement{
			Tag: "action",
			Actions: []CardButton{{
				Tag:  "button",
				Text: CardText{Tag: "plain_text", Content: "View Details"},
				Type: "primary",
				URL:  msg.URL,
			}},
		})
	}
	if msg.Creator != "" {
		elements = append(elements, CardElement{
			Tag:      "note",
			Elements: []CardText{{Tag: "lark_md", Content: "creator: " + Mention(msg.Creator, mentions)}},
		})
	}
	return Card{
		MsgType: "interactive",
		Card: CardBody{
			Header:   CardHeader{Title: CardText{Tag: "plain_text", Content: msg.Title}},
			Elements: elements,
		},
	}
}

// Mention returns the Lark @-mention markup for login when it has an open ID
// in mentions, and the login itself otherwise. GitHub logins are case
// insensitive, so mentions is keyed by lowercased login (see
// config.MergeMentions).
func Mention(login string, mentions map[string]string) string {
	if id := mentions[strings.ToLower(login)]; id != "" {
		return "<at id=" + id + "></at>"
	}
	return login
}
