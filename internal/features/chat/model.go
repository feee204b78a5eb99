package chat

import (
	"time"

	"amigo-admin/internal/database"
)

// Kind is how a conversation is presented to the panel
type Kind string

const (
	KindDirect     Kind = "direct"
	KindGroup      Kind = "group"
	KindInnerGroup Kind = "innerGroup"
)

// Layout is where the conversation's messages physically live
type Layout int

const (
	// chats/{chatId}/messages
	LayoutChats Layout = iota + 1
	// groups/{groupId}/messages
	LayoutGroup
	// groups/{groupId}/innerGroups/{innerGroupId}/messages
	LayoutNested
)

// Location identifies one concrete message container
type Location struct {
	Kind         Kind
	Layout       Layout
	ChatID       string
	GroupID      string
	InnerGroupID string
}

// RawDoc is an undecoded document as read from the store
type RawDoc struct {
	ID   string
	Data database.Fields
}

type Message struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	SenderID    string     `json:"senderId"`
	SenderName  string     `json:"senderName"`
	SenderEmail string     `json:"senderEmail"`
	Timestamp   *time.Time `json:"timestamp"`
	Type        string     `json:"type"`
	MediaURL    string     `json:"mediaUrl,omitempty"`
	MediaType   string     `json:"mediaType,omitempty"`
}

// Conversation is a resolved chat with its ordered messages
type Conversation struct {
	ChatID   string    `json:"chatId"`
	ChatType Kind      `json:"chatType"`
	Messages []Message `json:"messages"`
}

// Summary is one row of the chat list
type Summary struct {
	ID               string      `json:"id"`
	ChatType         Kind        `json:"chatType"`
	Participants     []string    `json:"participants"`
	ParticipantNames interface{} `json:"participantNames"`
	LastMessage      string      `json:"lastMessage"`
	LastMessageType  string      `json:"lastMessageType"`
	LastMessageTime  *time.Time  `json:"lastMessageTime,omitempty"`
	LastUpdated      *time.Time  `json:"lastUpdated,omitempty"`
	GroupID          string      `json:"groupId,omitempty"`
	InnerGroupID     string      `json:"innerGroupId,omitempty"`
	GroupName        string      `json:"groupName,omitempty"`
	InnerGroupName   string      `json:"innerGroupName,omitempty"`
	IsActive         bool        `json:"isActive"`
}

// summarize returns false for chat documents the list does not show
func summarize(doc RawDoc) (Summary, bool) {
	d := doc.Data
	s := Summary{
		ID:               doc.ID,
		Participants:     d.Strings("participants"),
		ParticipantNames: d["participantNames"],
		LastMessage:      d.String("lastMessage"),
		LastMessageType:  d.StringOr("lastMessageType", "text"),
		LastMessageTime:  d.Time("lastMessageTime"),
		LastUpdated:      d.Time("lastActivity"),
		IsActive:         !d.Has("isActive") || d.Bool("isActive"),
	}
	if s.ParticipantNames == nil {
		s.ParticipantNames = []string{}
	}

	groupID, innerGroupID := d.String("groupId"), d.String("innerGroupId")
	switch {
	case groupID != "" && innerGroupID != "":
		s.ChatType = KindInnerGroup
		s.GroupID = groupID
		s.InnerGroupID = innerGroupID
		s.GroupName = d.String("groupName")
		s.InnerGroupName = d.String("innerGroupName")
	case groupID == "" && innerGroupID == "" && len(s.Participants) >= 2:
		s.ChatType = KindDirect
	default:
		return Summary{}, false
	}
	return s, true
}

// normalize maps the message shapes written by different app versions
func normalize(doc RawDoc) Message {
	d := doc.Data
	text, ok := d["text"].(string)
	if !ok || text == "" {
		text, _ = d["content"].(string)
	}
	return Message{
		ID:          doc.ID,
		Text:        text,
		SenderID:    d.String("senderId"),
		SenderName:  d.String("senderName"),
		SenderEmail: d.String("senderEmail"),
		Timestamp:   d.Time("timestamp"),
		Type:        d.StringOr("type", "text"),
		MediaURL:    d.String("mediaUrl"),
		MediaType:   d.String("mediaType"),
	}
}
