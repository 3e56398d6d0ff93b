package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/openbible/internal/catalog"
	"github.com/mrlokans/openbible/internal/entities"
)

// verseBatchSize keeps each INSERT well under SQLite's bound-variable limit.
const verseBatchSize = 500

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Language{},
		&entities.Translation{},
		&entities.Book{},
		&entities.Chapter{},
		&entities.Verse{},
		&entities.Setting{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ReplaceCatalog drops any previously exported rows and writes cat in a
// single transaction. Rows are inserted in catalog order.
func (d *Database) ReplaceCatalog(ctx context.Context, cat *catalog.Catalog) error {
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearCatalog(tx); err != nil {
			return err
		}

		for _, language := range cat.Languages() {
			languageRow := entities.Language{
				Abbreviation: language.Abbreviation(),
				DisplayName:  language.DisplayName(),
			}
			if err := tx.Create(&languageRow).Error; err != nil {
				return fmt.Errorf("failed to save language %s: %w", language.Abbreviation(), err)
			}

			for _, translation := range language.Translations() {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := saveTranslation(tx, languageRow.ID, translation); err != nil {
					return fmt.Errorf("failed to save translation %s/%s: %w", language.Abbreviation(), translation.ID(), err)
				}
			}
		}
		return nil
	})
}

func clearCatalog(tx *gorm.DB) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&entities.Verse{},
		&entities.Chapter{},
		&entities.Book{},
		&entities.Translation{},
		&entities.Language{},
	} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

func saveTranslation(tx *gorm.DB, languageID uint, translation *catalog.Translation) error {
	translationRow := entities.Translation{
		LanguageID:      languageID,
		Key:             translation.ID(),
		DisplayName:     translation.DisplayName(),
		AlternativeName: translation.AlternativeName(),
		Abbreviation:    translation.Abbreviation(),
		Description:     translation.Description(),
	}
	if err := tx.Create(&translationRow).Error; err != nil {
		return err
	}

	books := translation.Books()
	if len(books) == 0 {
		return nil
	}
	bookRows := make([]entities.Book, len(books))
	for i, book := range books {
		bookRows[i] = entities.Book{
			TranslationID: translationRow.ID,
			Abbreviation:  book.Abbreviation(),
			Name:          book.Name(),
			Position:      i + 1,
		}
	}
	if err := tx.Create(&bookRows).Error; err != nil {
		return err
	}

	for i, book := range books {
		chapters := book.Chapters()
		chapterRows := make([]entities.Chapter, len(chapters))
		for j, chapter := range chapters {
			chapterRows[j] = entities.Chapter{
				BookID: bookRows[i].ID,
				Number: chapter.Number(),
				Name:   chapter.Name(),
			}
		}
		if err := tx.CreateInBatches(&chapterRows, verseBatchSize).Error; err != nil {
			return err
		}

		var verseRows []entities.Verse
		for j, chapter := range chapters {
			for _, verse := range chapter.Verses() {
				verseRows = append(verseRows, entities.Verse{
					ChapterID: chapterRows[j].ID,
					Number:    verse.Number,
					Text:      verse.Text,
				})
			}
		}
		if len(verseRows) == 0 {
			continue
		}
		if err := tx.CreateInBatches(&verseRows, verseBatchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

// Stats counts the exported rows per level.
func (d *Database) Stats() (catalog.Stats, error) {
	var stats catalog.Stats
	for _, count := range []struct {
		model any
		dest  *int
	}{
		{&entities.Language{}, &stats.Languages},
		{&entities.Translation{}, &stats.Translations},
		{&entities.Book{}, &stats.Books},
		{&entities.Chapter{}, &stats.Chapters},
		{&entities.Verse{}, &stats.Verses},
	} {
		var n int64
		if err := d.DB.Model(count.model).Count(&n).Error; err != nil {
			return catalog.Stats{}, err
		}
		*count.dest = int(n)
	}
	return stats, nil
}

// GetVerse looks a verse up by the same keys the HTTP API uses.
func (d *Database) GetVerse(language, translation, book string, chapter, verse int) (*entities.Verse, error) {
	var row entities.Verse
	err := d.DB.
		Joins("JOIN chapters ON chapters.id = verses.chapter_id").
		Joins("JOIN books ON books.id = chapters.book_id").
		Joins("JOIN translations ON translations.id = books.translation_id").
		Joins("JOIN languages ON languages.id = translations.language_id").
		Where("languages.abbreviation = ? AND translations.key = ? AND books.abbreviation = ? AND chapters.number = ? AND verses.number = ?",
			language, translation, book, chapter, verse).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetBooks returns the books of a translation in catalog order.
func (d *Database) GetBooks(language, translation string) ([]entities.Book, error) {
	var books []entities.Book
	err := d.DB.
		Joins("JOIN translations ON translations.id = books.translation_id").
		Joins("JOIN languages ON languages.id = translations.language_id").
		Where("languages.abbreviation = ? AND translations.key = ?", language, translation).
		Order("books.position").
		Find(&books).Error
	return books, err
}

func (d *Database) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := d.DB.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (d *Database) SetSetting(key, value string) error {
	var setting entities.Setting
	result := d.DB.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return d.DB.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return d.DB.Save(&setting).Error
}
