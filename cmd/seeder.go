package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal"
	"github.com/Dhrumivyas20/placement-portal/internal/application"
	applicationPostgres "github.com/Dhrumivyas20/placement-portal/internal/application/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/company"
	adminDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/admin"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/drive"
	"github.com/Dhrumivyas20/placement-portal/internal/student"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample students, companies, drives and applications for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps, err := initializeDependencies()
		if err != nil {
			log.Fatalf("failed to initialize dependencies: %v", err)
		}
		defer deps.Close()

		if err := seed(cmd.Context(), deps); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	},
}

const seedPassword = "password123"

func seed(ctx context.Context, deps *Dependencies) error {
	if clearData {
		err := deps.Gorm.WithContext(ctx).Exec("TRUNCATE applications, placement_drives, companies, students, placement_statistics, revoked_sessions RESTART IDENTITY CASCADE").Error
		if err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
		fmt.Println("Cleared existing data")
	}

	var existing int64
	if err := deps.Gorm.WithContext(ctx).Model(&studentDatamodel.Student{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		fmt.Println("students already present; run with --clear to reseed")
		return nil
	}

	if err := ensureDefaultAdmin(ctx, deps); err != nil {
		return err
	}
	var adminRow adminDatamodel.Admin
	if err := deps.Gorm.WithContext(ctx).Order("id").First(&adminRow).Error; err != nil {
		return fmt.Errorf("load admin: %w", err)
	}
	adminSess := &internal.Session{AccountID: adminRow.ID, Role: internal.RoleAdmin}

	students := []student.RegisterStudentDTO{
		{Name: "Aarav Sharma", Email: "aarav@student.edu", Department: "Computer Science", CGPA: 8.7, JoiningYear: 2021, GraduationYear: 2025},
		{Name: "Diya Patel", Email: "diya@student.edu", Department: "Electronics", CGPA: 9.1, JoiningYear: 2021, GraduationYear: 2025},
		{Name: "Kabir Rao", Email: "kabir@student.edu", Department: "Mechanical", CGPA: 7.4, JoiningYear: 2022, GraduationYear: 2026},
	}
	var studentIDs []int64
	for _, dto := range students {
		dto.Password = seedPassword
		token, err := deps.Resumes.Save("resume.pdf", strings.NewReader("%PDF-1.4\n% "+dto.Name+"\n"))
		if err != nil {
			return fmt.Errorf("save resume: %w", err)
		}
		dto.ResumeFilename = &token

		s, err := deps.Services.Student.Register(ctx, dto)
		if err != nil {
			return fmt.Errorf("register student %s: %w", dto.Email, err)
		}
		studentIDs = append(studentIDs, s.ID)
		fmt.Println("Seeded student:", s.Email)
	}

	companies := []company.RegisterCompanyDTO{
		{Name: "Infosys", Email: "campus@infosys.example", HRContactName: "Meera Iyer", HRContactEmail: "meera@infosys.example", Industry: "IT Services"},
		{Name: "Tata Motors", Email: "careers@tatamotors.example", HRContactName: "Rohan Das", HRContactEmail: "rohan@tatamotors.example", Industry: "Automotive"},
		{Name: "Pending Labs", Email: "hello@pendinglabs.example", HRContactName: "Nisha Jain", HRContactEmail: "nisha@pendinglabs.example", Industry: "Research"},
	}
	var approved []int64
	for i, dto := range companies {
		dto.Password = seedPassword
		c, err := deps.Services.Company.Register(ctx, dto)
		if err != nil {
			return fmt.Errorf("register company %s: %w", dto.Email, err)
		}
		// the last company stays pending so the approval queue is not empty
		if i < len(companies)-1 {
			if _, err := deps.Services.Company.Approve(ctx, adminSess, c.ID); err != nil {
				return fmt.Errorf("approve company %s: %w", dto.Email, err)
			}
			approved = append(approved, c.ID)
		}
		fmt.Println("Seeded company:", c.Email)
	}

	deadline := internal.NewDate(time.Now().AddDate(0, 1, 0))
	salary := "6-9 LPA"
	apps := applicationPostgres.NewApplicationRepository(deps.Gorm)
	for _, companyID := range approved {
		companySess := &internal.Session{AccountID: companyID, Role: internal.RoleCompany}
		d, err := deps.Services.Drive.Create(ctx, companySess, drive.DriveDTO{
			JobTitle:            "Graduate Engineer Trainee",
			JobDescription:      "Rotational programme across engineering teams",
			JobLocation:         "Bengaluru",
			JobType:             "Full-time",
			SalaryRange:         &salary,
			Positions:           5,
			ApplicationDeadline: deadline,
		})
		if err != nil {
			return fmt.Errorf("create drive: %w", err)
		}
		if _, err := deps.Services.Drive.Approve(ctx, adminSess, d.ID); err != nil {
			return fmt.Errorf("approve drive: %w", err)
		}
		for _, sid := range studentIDs {
			if err := apps.Create(ctx, application.ToDataModel(application.NewApplication(sid, d.ID))); err != nil {
				return fmt.Errorf("create application: %w", err)
			}
		}
		fmt.Println("Seeded drive:", d.ID, "for company", companyID)
	}

	fmt.Println("Seed complete. Every seeded account uses password:", seedPassword)
	return nil
}
