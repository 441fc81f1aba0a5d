// 初始化管理员账号脚本
//
// 首次部署后执行一次，创建默认租户下的管理员账号。
// 已存在同邮箱账号时直接退出，不覆盖。
//
// 用法: go run scripts/seed_admin.go -email admin@example.com -password <密码>

package main

import (
	"flag"
	"log"
	"os"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	email := flag.String("email", "admin@example.com", "管理员邮箱")
	password := flag.String("password", "", "管理员密码")
	name := flag.String("name", "Administrator", "显示名")
	flag.Parse()

	if *password == "" {
		log.Fatal("必须通过 -password 指定密码")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("连接数据库失败: %v", err)
	}

	var existing model.Profile
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Printf("账号已存在: %s，跳过", *email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	var tenant model.Tenant
	if err := db.Where("slug = ?", "default").First(&tenant).Error; err != nil {
		log.Fatalf("默认租户不存在，请先执行迁移: %v", err)
	}

	admin := model.Profile{
		FullName: *name,
		Email:    *email,
		Password: string(hashed),
		Role:     model.Admin,
		Active:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	membership := model.TenantMembership{
		TenantID:  tenant.ID,
		ProfileID: admin.ID,
		Role:      model.Admin,
	}
	if err := db.Create(&membership).Error; err != nil {
		log.Fatalf("创建租户成员关系失败: %v", err)
	}

	log.Printf("管理员创建成功: %s (租户 %s)", *email, tenant.Slug)
}
