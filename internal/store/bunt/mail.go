package bunt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/hireai/waitlist-manager/internal/entity"
	"github.com/tidwall/buntdb"
)

const (
	mailPrefix = "mail:"
	mailSeqKey = "mail_seq"
)

type mailStore struct {
	*BuntStore
}

func mailKey(id int) string {
	return fmt.Sprintf("%s%010d", mailPrefix, id)
}

func (ms *mailStore) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	var id int
	err := ms.db.Update(func(tx *buntdb.Tx) error {
		seq, err := tx.Get(mailSeqKey)
		if err != nil && err != buntdb.ErrNotFound {
			return err
		}
		if seq != "" {
			if id, err = strconv.Atoi(seq); err != nil {
				return fmt.Errorf("bad mail sequence %q: %w", seq, err)
			}
		}
		id++
		if _, _, err := tx.Set(mailSeqKey, strconv.Itoa(id), nil); err != nil {
			return err
		}

		m := *ser
		m.Id = id
		m.CreatedAt = ms.Now()
		if m.Sent {
			m.SentAt.Time, m.SentAt.Valid = ms.Now(), true
		}
		return setJSON(tx, mailKey(id), &m)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add mail: %w", err)
	}
	return id, nil
}

func (ms *mailStore) GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error) {
	var (
		srs    []entity.SendEmailRequest
		decErr error
	)
	err := ms.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(mailPrefix+"*", func(key, value string) bool {
			var m entity.SendEmailRequest
			if decErr = json.Unmarshal([]byte(value), &m); decErr != nil {
				return false
			}
			if m.Sent || (!withError && m.ErrMsg.Valid) {
				return true
			}
			srs = append(srs, m)
			return true
		})
	})
	if err == nil {
		err = decErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unsent mail: %w", err)
	}
	sort.Slice(srs, func(i, j int) bool { return srs[i].Id < srs[j].Id })
	return srs, nil
}

func (ms *mailStore) update(id int, apply func(m *entity.SendEmailRequest)) error {
	return ms.db.Update(func(tx *buntdb.Tx) error {
		m := &entity.SendEmailRequest{}
		found, err := getJSON(tx, mailKey(id), m)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("mail %d not found", id)
		}
		apply(m)
		return setJSON(tx, mailKey(id), m)
	})
}

func (ms *mailStore) UpdateSent(ctx context.Context, id int) error {
	err := ms.update(id, func(m *entity.SendEmailRequest) {
		m.Sent = true
		m.SentAt.Time, m.SentAt.Valid = ms.Now(), true
		m.ErrMsg.String, m.ErrMsg.Valid = "", false
	})
	if err != nil {
		return fmt.Errorf("failed to update sent: %w", err)
	}
	return nil
}

func (ms *mailStore) AddError(ctx context.Context, id int, errMsg string) error {
	err := ms.update(id, func(m *entity.SendEmailRequest) {
		m.ErrMsg.String, m.ErrMsg.Valid = errMsg, true
	})
	if err != nil {
		return fmt.Errorf("failed to add mail error: %w", err)
	}
	return nil
}
