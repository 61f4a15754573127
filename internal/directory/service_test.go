package directory_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/Dhrumivyas20/placement-portal/internal"
	companyDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/company"
	studentDatamodel "github.com/Dhrumivyas20/placement-portal/internal/core/datamodel/student"
	"github.com/Dhrumivyas20/placement-portal/internal/directory"
	"github.com/Dhrumivyas20/placement-portal/internal/directory/postgres"
	"github.com/Dhrumivyas20/placement-portal/internal/testutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestDirectory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Suite")
}

var admin = &internal.Session{AccountID: 1, Role: internal.RoleAdmin}

var _ = Describe("ParseQuery", func() {
	It("trims and lower-cases", func() {
		q := directory.ParseQuery("  ASHA ")
		Expect(q.Term).To(Equal("asha"))
		Expect(q.ID).To(BeNil())
		Expect(q.Blank()).To(BeFalse())
	})

	It("recognises ids", func() {
		q := directory.ParseQuery("42")
		Expect(q.ID).NotTo(BeNil())
		Expect(*q.ID).To(Equal(int64(42)))
	})

	It("escapes LIKE wildcards", func() {
		Expect(directory.ParseQuery("50%_x").Pattern()).To(Equal(`%50\%\_x%`))
	})

	It("treats whitespace as blank", func() {
		Expect(directory.ParseQuery("   ").Blank()).To(BeTrue())
	})
})

var _ = Describe("Directory Service", func() {
	var (
		db      *gorm.DB
		service *directory.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLite()
		Expect(err).NotTo(HaveOccurred())
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = directory.NewService(postgres.NewDirectoryRepository(db), logger)
		ctx = context.Background()

		phone := "98450 67890"
		for _, s := range []studentDatamodel.Student{
			{Name: "Asha Rao", Email: "asha@college.test", Department: "CSE", Phone: &phone},
			{Name: "Vikram Shah", Email: "vikram@college.test", Department: "Mechanical"},
			{Name: "Meera Iyer", Email: "meera@college.test", Department: "ECE"},
		} {
			row := s
			row.PasswordHash = "x"
			row.JoiningYear, row.GraduationYear = 2022, 2026
			Expect(db.Create(&row).Error).To(Succeed())
		}
		for _, c := range []companyDatamodel.Company{
			{Name: "Acme Analytics", Email: "hr@acme.test", Industry: "Data"},
			{Name: "Bolt Motors", Email: "jobs@bolt.test", Industry: "Automotive"},
		} {
			row := c
			row.PasswordHash, row.HRContactName, row.HRContactEmail, row.ApprovalStatus = "x", "HR", "hr@x.test", "pending"
			Expect(db.Create(&row).Error).To(Succeed())
		}
	})

	AfterEach(func() {
		Expect(testutil.Close(db)).To(Succeed())
	})

	studentNames := func(q string) []string {
		found, err := service.SearchStudents(ctx, admin, q)
		Expect(err).NotTo(HaveOccurred())
		var out []string
		for _, s := range found {
			out = append(out, s.Name)
		}
		return out
	}

	companyNames := func(q string) []string {
		found, err := service.SearchCompanies(ctx, admin, q)
		Expect(err).NotTo(HaveOccurred())
		var out []string
		for _, c := range found {
			out = append(out, c.Name)
		}
		return out
	}

	It("returns everyone in id order for a blank query", func() {
		Expect(studentNames("")).To(Equal([]string{"Asha Rao", "Vikram Shah", "Meera Iyer"}))
		Expect(companyNames("  ")).To(Equal([]string{"Acme Analytics", "Bolt Motors"}))
	})

	It("matches case-insensitive substrings on every searchable field", func() {
		Expect(studentNames("RAO")).To(Equal([]string{"Asha Rao"}))
		Expect(studentNames("vikram@")).To(Equal([]string{"Vikram Shah"}))
		Expect(studentNames("mech")).To(Equal([]string{"Vikram Shah"}))
		Expect(studentNames("67890")).To(Equal([]string{"Asha Rao"}))
		Expect(companyNames("automotive")).To(Equal([]string{"Bolt Motors"}))
		Expect(companyNames("ACME.test")).To(Equal([]string{"Acme Analytics"}))
	})

	It("also matches the exact id of an all-digit query", func() {
		Expect(studentNames("3")).To(Equal([]string{"Meera Iyer"}))
	})

	It("finds nothing for unmatched terms", func() {
		Expect(studentNames("zzz")).To(BeEmpty())
		Expect(companyNames("%")).To(BeEmpty())
	})

	It("is admin only", func() {
		_, err := service.Search(ctx, &internal.Session{AccountID: 1, Role: internal.RoleStudent}, "")
		Expect(err).To(MatchError(internal.ErrForbidden))
		_, err = service.Search(ctx, nil, "")
		Expect(err).To(MatchError(internal.ErrUnauthenticated))
	})

	It("combines both searches", func() {
		res, err := service.Search(ctx, admin, " Acme ")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Query).To(Equal("acme"))
		Expect(res.Students).To(BeEmpty())
		Expect(res.Companies).To(HaveLen(1))
	})
})
