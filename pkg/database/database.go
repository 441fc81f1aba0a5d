package database

import (
	"fmt"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 执行表结构迁移并补默认数据
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Tenant{},
		&model.TenantMembership{},
		&model.Profile{},
		&model.Course{},
		&model.CourseModule{},
		&model.ContentItem{},
		&model.Assignment{},
		&model.Cohort{},
		&model.CohortMember{},
		&model.CohortCourseAssignment{},
		&model.ContentProgress{},
		&model.AuditLog{},
	)
	if err != nil {
		return err
	}

	// 默认租户（本地开发用）
	var count int64
	db.Model(&model.Tenant{}).Count(&count)
	if count == 0 {
		db.Create(&model.Tenant{
			Slug: "default",
			Name: "Default Organization",
		})
	}

	return nil
}
