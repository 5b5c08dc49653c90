package service

import (
	"context"

	"github.com/Anu1650/team-mange-sam/internal/models"
	"github.com/Anu1650/team-mange-sam/internal/store"
)

// PostMessage はチャットメッセージを追加します
func (s *Service) PostMessage(ctx context.Context, m models.Message) (models.Message, error) {
	if err := required("text", m.Text); err != nil {
		return models.Message{}, err
	}
	m.ID = s.newID()
	m.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Messages = append(d.Messages, m)
		return changedOnly(models.Messages), nil
	})
	if err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// PostAnnouncement は告知を先頭に追加します（新しい順）
func (s *Service) PostAnnouncement(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	if err := required("title", a.Title); err != nil {
		return models.Announcement{}, err
	}
	a.ID = s.newID()
	a.Pinned = false
	a.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Announcements = append([]models.Announcement{a}, d.Announcements...)
		return changed(models.Announcements, a.CreatedBy, "announcement_posted", "Posted announcement: "+a.Title), nil
	})
	if err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// CreateMeeting はミーティングを予定します
// ミーティングIDはそのままビデオ通話のルームIDになります
func (s *Service) CreateMeeting(ctx context.Context, m models.Meeting) (models.Meeting, error) {
	if err := required("title", m.Title); err != nil {
		return models.Meeting{}, err
	}
	m.ID = s.newID()
	m.Status = "scheduled"
	if m.Participants == nil {
		m.Participants = []string{}
	}
	m.CreatedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Meetings = append(d.Meetings, m)
		return changed(models.Meetings, m.CreatedBy, "meeting_scheduled", "Scheduled meeting: "+m.Title), nil
	})
	if err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

// UpdateMeeting はミーティングを部分更新します（議題・議事録・ステータスなど）
// 監査ログは書きません
func (s *Service) UpdateMeeting(ctx context.Context, id string, patch Patch) (models.Meeting, error) {
	var out models.Meeting
	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		idx := indexOf(d.Meetings, func(m models.Meeting) string { return m.ID }, id)
		if idx < 0 {
			return store.Change{}, notFound("meeting")
		}
		m := d.Meetings[idx]
		if err := mergePatch(&m, patch); err != nil {
			return store.Change{}, err
		}
		if m.Participants == nil {
			m.Participants = []string{}
		}
		d.Meetings[idx] = m
		out = m
		return changedOnly(models.Meetings), nil
	})
	return out, err
}

// UploadFile はファイルのメタデータを登録します（ファイル本体は扱いません）
func (s *Service) UploadFile(ctx context.Context, f models.File) (models.File, error) {
	if err := required("name", f.Name); err != nil {
		return models.File{}, err
	}
	f.ID = s.newID()
	f.UploadedAt = s.timestamp()

	err := s.store.Mutate(ctx, func(d *models.Dataset) (store.Change, error) {
		d.Files = append(d.Files, f)
		return changed(models.Files, f.UploadedBy, "file_uploaded", "Uploaded file: "+f.Name), nil
	})
	if err != nil {
		return models.File{}, err
	}
	return f, nil
}
