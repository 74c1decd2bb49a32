// Package collections holds the pure list operations behind the notes,
// chat-session and saved-resource features. The session manager applies
// them to in-memory state and persists the result; nothing here touches
// storage.
package collections

import (
	"time"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// PrependNote inserts a note at the front (most-recent-first ordering)
func PrependNote(notes []models.Note, note models.Note) []models.Note {
	return append([]models.Note{note}, notes...)
}

// UpdateNoteContent replaces the content of the note with the given id
// and stamps lastEdited. Unknown ids are a no-op.
func UpdateNoteContent(notes []models.Note, id, content string) []models.Note {
	out := append([]models.Note(nil), notes...)
	for i := range out {
		if out[i].ID == id {
			out[i].Content = content
			out[i].LastEdited = nowMillis()
			break
		}
	}
	return out
}

// DeleteNote removes the note with the given id
func DeleteNote(notes []models.Note, id string) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// ChatSessionPatch is a partial update to a chat session. Nil fields are
// left untouched; AppendMessages are added to the end of the transcript.
type ChatSessionPatch struct {
	Title           *string
	FileName        *string
	DocumentContext *string
	AppendMessages  []models.ChatMessage
}

// PrependChatSession inserts a session at the front
func PrependChatSession(sessions []models.ChatSession, session models.ChatSession) []models.ChatSession {
	return append([]models.ChatSession{session}, sessions...)
}

// UpdateChatSession applies a patch to the session with the given id and
// stamps lastUpdated. Unknown ids are a no-op.
func UpdateChatSession(sessions []models.ChatSession, id string, patch ChatSessionPatch) []models.ChatSession {
	out := append([]models.ChatSession(nil), sessions...)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if patch.Title != nil {
			out[i].Title = *patch.Title
		}
		if patch.FileName != nil {
			out[i].FileName = *patch.FileName
		}
		if patch.DocumentContext != nil {
			out[i].DocumentContext = *patch.DocumentContext
		}
		if len(patch.AppendMessages) > 0 {
			out[i].Messages = append(append([]models.ChatMessage(nil), out[i].Messages...), patch.AppendMessages...)
		}
		out[i].LastUpdated = nowMillis()
		break
	}
	return out
}

// DeleteChatSession removes the session with the given id
func DeleteChatSession(sessions []models.ChatSession, id string) []models.ChatSession {
	out := make([]models.ChatSession, 0, len(sessions))
	for _, s := range sessions {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// SaveResource adds a resource to the saved set, deduplicated by id.
// Saving an already-saved resource is a no-op.
func SaveResource(mem models.UserMemory, resource models.Resource) models.UserMemory {
	for _, r := range mem.SavedResources {
		if r.ID == resource.ID {
			return mem
		}
	}
	mem.SavedResources = append(append([]models.Resource(nil), mem.SavedResources...), resource)
	return mem
}

// RemoveResource drops the resource with the given id from the saved set.
// Unknown ids leave the set unchanged.
func RemoveResource(mem models.UserMemory, resourceID string) models.UserMemory {
	out := make([]models.Resource, 0, len(mem.SavedResources))
	for _, r := range mem.SavedResources {
		if r.ID != resourceID {
			out = append(out, r)
		}
	}
	mem.SavedResources = out
	return mem
}
