// Seeds a demo dataset: a platform admin, a demo company with branches,
// departments and employees, and an attendance group with a week of
// check-in history. Safe to run once against an empty database.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/branch"
	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/fixtures"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const defaultPassword = "password123"

// Demo office location (Jakarta).
const (
	officeLat = -6.2088
	officeLon = 106.8456
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	ctx := context.Background()

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	groupRepo := postgresql.NewGroupRepository(db)
	periodRepo := postgresql.NewPeriodRepository(db)
	checkInRepo := postgresql.NewCheckInRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)

	if _, err := userRepo.GetByEmail(ctx, "admin@attendly.dev"); err == nil {
		log.Fatal("Database already seeded; admin@attendly.dev exists")
	}

	passwordHash := mustHash(defaultPassword)

	// Platform administrator, outside any company.
	admin, err := userRepo.Create(ctx, user.User{
		Email:        "admin@attendly.dev",
		PasswordHash: &passwordHash,
		FullName:     "Platform Admin",
		Role:         user.RoleSuperAdmin,
	})
	must(err, "create super admin")
	fmt.Println("Created super admin:", admin.Email)

	// Demo company with its manager.
	companyData, err := companyRepo.Create(ctx, company.Company{
		Name:             "Acme Logistics",
		Description:      "Demo tenant",
		SubscriptionPlan: "premium",
		MaxEmployees:     200,
	})
	must(err, "create company")

	manager, err := userRepo.Create(ctx, user.User{
		CompanyID:    &companyData.ID,
		Email:        "manager@acme.dev",
		PasswordHash: &passwordHash,
		FullName:     "Mia Manager",
		Role:         user.RoleCompanyManager,
		EmployeeCode: strPtr("0001-0001"),
	})
	must(err, "create manager")
	must(companyRepo.Update(ctx, company.UpdateCompanyRequest{ID: companyData.ID, OwnerUserID: &manager.ID}), "set company owner")

	// Branches: the default headquarters plus a warehouse.
	hq, err := branchRepo.Create(ctx, fixtures.GetDefaultBranch(companyData.ID, companyData.Name))
	must(err, "create headquarters")

	warehouse, err := branchRepo.Create(ctx, branch.Branch{
		CompanyID: companyData.ID,
		Name:      "Warehouse North",
		Code:      "WH-N",
		Address:   strPtr("Jl. Industri Raya 12"),
	})
	must(err, "create warehouse branch")
	fmt.Println("Created branches:", hq.Name+",", warehouse.Name)

	// Departments for headquarters.
	var departments []department.Department
	for _, d := range fixtures.GetDefaultDepartments(hq.ID) {
		created, err := departmentRepo.Create(ctx, d)
		must(err, "create department "+d.Code)
		departments = append(departments, created)
	}

	// HR for headquarters plus a handful of employees.
	hr, err := userRepo.Create(ctx, user.User{
		CompanyID:    &companyData.ID,
		BranchID:     &hq.ID,
		Email:        "hr@acme.dev",
		PasswordHash: &passwordHash,
		FullName:     "Hana HR",
		Role:         user.RoleHREmployee,
		EmployeeCode: strPtr("0001-0002"),
	})
	must(err, "create hr")

	employees := make([]user.User, 0, 4)
	for i, name := range []string{"Eko Pratama", "Dewi Lestari", "Budi Santoso", "Rina Wulandari"} {
		code := fmt.Sprintf("0001-%04d", i+10)
		emp, err := userRepo.Create(ctx, user.User{
			CompanyID:    &companyData.ID,
			BranchID:     &hq.ID,
			Email:        fmt.Sprintf("employee%d@acme.dev", i+1),
			PasswordHash: &passwordHash,
			FullName:     name,
			Role:         user.RoleEmployee,
			EmployeeCode: &code,
		})
		must(err, "create employee "+name)
		employees = append(employees, emp)
	}
	fmt.Printf("Created %d employees and 1 HR account\n", len(employees))

	// Department memberships: HR into Human Resources, the rest into
	// Engineering.
	_, err = departmentRepo.AddMember(ctx, department.Membership{
		UserID:       hr.ID,
		DepartmentID: departments[1].ID,
		Position:     "HR Generalist",
	})
	must(err, "add hr membership")
	for _, emp := range employees {
		_, err = departmentRepo.AddMember(ctx, department.Membership{
			UserID:       emp.ID,
			DepartmentID: departments[2].ID,
			Position:     "Staff",
		})
		must(err, "add employee membership")
	}

	// Geofenced attendance group with default shifts.
	group, err := groupRepo.Create(ctx, fixtures.GetDefaultGroup(companyData.ID, &hq.ID, officeLat, officeLon))
	must(err, "create attendance group")

	var officeHours attendance.Period
	for _, p := range fixtures.GetDefaultPeriods(group.ID) {
		created, err := periodRepo.Create(ctx, p)
		must(err, "create period "+p.Name)
		if created.Name == "Office Hours" {
			officeHours = created
		}
	}

	for _, emp := range employees {
		_, err = groupRepo.AssignMember(ctx, group.ID, emp.ID)
		must(err, "assign group member")
	}
	fmt.Println("Created attendance group:", group.Name)

	// A week of history: on-time mornings, one late Monday for the first
	// employee.
	seedHistory(ctx, checkInRepo, summaryRepo, group, officeHours, employees)

	fmt.Println("Seeding complete. All demo accounts use password:", defaultPassword)
}

func seedHistory(
	ctx context.Context,
	checkInRepo attendance.CheckInRepository,
	summaryRepo attendance.SummaryRepository,
	group attendance.Group,
	period attendance.Period,
	employees []user.User,
) {
	day := time.Now().AddDate(0, 0, -7)
	for seeded := 0; seeded < 5; day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		seeded++
		date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

		for i, emp := range employees {
			inStatus := attendance.StatusOnTime
			checkIn := date.Add(9*time.Hour + time.Duration(i)*2*time.Minute)
			if i == 0 && day.Weekday() == time.Monday {
				checkIn = date.Add(9*time.Hour + 40*time.Minute)
				inStatus = attendance.StatusLate
			}
			checkOut := date.Add(17*time.Hour + time.Duration(i)*time.Minute)

			_, err := checkInRepo.Create(ctx, attendance.CheckIn{
				UserID:         emp.ID,
				GroupID:        group.ID,
				PeriodID:       &period.ID,
				Type:           attendance.TypeIn,
				RecordedAt:     checkIn,
				Latitude:       group.Latitude,
				Longitude:      group.Longitude,
				DistanceMeters: 0,
				Status:         inStatus,
			})
			must(err, "seed check-in")

			_, err = checkInRepo.Create(ctx, attendance.CheckIn{
				UserID:         emp.ID,
				GroupID:        group.ID,
				PeriodID:       &period.ID,
				Type:           attendance.TypeOut,
				RecordedAt:     checkOut,
				Latitude:       group.Latitude,
				Longitude:      group.Longitude,
				DistanceMeters: 0,
				Status:         attendance.StatusOnTime,
			})
			must(err, "seed check-out")

			_, err = summaryRepo.Upsert(ctx, attendance.Summary{
				UserID:        emp.ID,
				GroupID:       group.ID,
				Date:          date,
				FirstIn:       &checkIn,
				LastOut:       &checkOut,
				TotalMinutes:  int(checkOut.Sub(checkIn).Minutes()),
				TotalCheckIns: 2,
				IsPresent:     true,
				IsLate:        inStatus == attendance.StatusLate,
			})
			must(err, "seed summary")
		}
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}
	return string(hash)
}

func must(err error, step string) {
	if err != nil {
		log.Fatal("Failed to "+step+": ", err)
	}
}

func strPtr(s string) *string { return &s }
