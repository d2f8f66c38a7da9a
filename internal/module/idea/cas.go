package idea

import (
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// casRetries 版本冲突时的最大重试次数，超出后向调用方返回并发冲突
const casRetries = 3

var errCASConflict = errors.New("idea version conflict")

// Mutate 对单个创意执行 读取-校验-写入
// fn 在事务内拿到最新数据做校验和修改（可顺带写附属表），写回时带版本号条件，
// 版本不匹配说明有并发写入，整个事务回滚后重读重试
func Mutate(db *gorm.DB, id uint, fn func(tx *gorm.DB, idea *model.Idea) *response.Error) (*model.Idea, *response.Error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		var result *model.Idea
		var bizErr *response.Error

		err := db.Transaction(func(tx *gorm.DB) error {
			var fresh model.Idea
			if err := tx.First(&fresh, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					bizErr = response.ErrNotFound.WithTips("创意不存在")
				} else {
					bizErr = response.ErrDatabase.WithOrigin(err)
				}
				return err
			}

			oldVersion := fresh.Version
			if e := fn(tx, &fresh); e != nil {
				bizErr = e
				return e
			}

			fresh.Version = oldVersion + 1
			res := tx.Model(&model.Idea{}).
				Where("id = ? AND version = ?", fresh.ID, oldVersion).
				Select("*").
				Omit("id", "created_at", clause.Associations).
				Updates(&fresh)
			if res.Error != nil {
				bizErr = response.ErrDatabase.WithOrigin(res.Error)
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errCASConflict
			}
			result = &fresh
			return nil
		})

		if err == nil {
			return result, nil
		}
		if errors.Is(err, errCASConflict) {
			continue
		}
		if bizErr != nil {
			return nil, bizErr
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return nil, response.ErrConcurrentModification
}
