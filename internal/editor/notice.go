package editor

import "log"

// NoticeKind classifies a notice for presentation.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	}
	return "info"
}

// Topics group notices so they can be routed to desktop notifications.
const (
	TopicLayout = "layout"
	TopicFill   = "fill"
	TopicExport = "export"
	TopicCopy   = "copy"
	TopicEdit   = "edit"
)

// Notice is a transient user-visible message.
type Notice struct {
	Kind   NoticeKind
	Topic  string
	Title  string
	Detail string
	Err    error
}

// NoticeHandler receives notices on the editor goroutine.
type NoticeHandler func(Notice)

func (e *Editor) notify(n Notice) {
	if n.Err != nil {
		log.Printf("%s: %s: %v", n.Topic, n.Title, n.Err)
	}
	if e.onNotice != nil {
		e.onNotice(n)
	}
}

func (e *Editor) fail(topic, title, detail string, err error) error {
	e.notify(Notice{Kind: NoticeError, Topic: topic, Title: title, Detail: detail, Err: err})
	return err
}
