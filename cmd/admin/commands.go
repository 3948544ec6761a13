package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	"github.com/noah-isme/sma-result-portal/pkg/export"
	"github.com/noah-isme/sma-result-portal/pkg/storage"
)

const usage = `usage: admin <command> [flags]

commands:
  add-student    --name --reg --roll --course --semester --year --dob
  update-result  --reg --subject --internal --external [--grade]
  export-csv     [--out results_export.csv]
  export-xlsx    [--out results_export.xlsx]
`

const (
	defaultExportPath     = "results_export.csv"
	defaultXLSXExportPath = "results_export.xlsx"
	xlsxSheetName         = "Results"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errMissingFlag    = errors.New("missing required flag")
)

type adminService interface {
	AddStudent(ctx context.Context, req dto.AddStudentRequest) error
	UpdateResult(ctx context.Context, req dto.UpdateResultRequest) error
	ExportResults(ctx context.Context) (export.Dataset, error)
}

type app struct {
	svc    adminService
	store  *storage.LocalStorage
	stdout io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w\n%s", errUnknownCommand, usage)
	}
	switch args[0] {
	case "add-student", "add_student":
		return a.addStudent(ctx, args[1:])
	case "update-result", "update_result":
		return a.updateResult(ctx, args[1:])
	case "export-csv", "export_csv":
		return a.exportCSV(ctx, args[1:])
	case "export-xlsx", "export_xlsx":
		return a.exportXLSX(ctx, args[1:])
	default:
		return fmt.Errorf("%w %q\n%s", errUnknownCommand, args[0], usage)
	}
}

func (a *app) addStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-student", flag.ContinueOnError)
	var req dto.AddStudentRequest
	fs.StringVar(&req.Name, "name", "", "student name")
	fs.StringVar(&req.RegistrationNumber, "reg", "", "registration number")
	fs.StringVar(&req.RollNumber, "roll", "", "roll number")
	fs.Int64Var(&req.CourseID, "course", 0, "course id")
	fs.IntVar(&req.Semester, "semester", 0, "semester")
	fs.StringVar(&req.AcademicYear, "year", "", "academic year, e.g. 2024-25")
	fs.StringVar(&req.DateOfBirth, "dob", "", "date of birth YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.svc.AddStudent(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Student added.")
	return nil
}

func (a *app) updateResult(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-result", flag.ContinueOnError)
	var req dto.UpdateResultRequest
	fs.StringVar(&req.RegistrationNumber, "reg", "", "registration number")
	fs.StringVar(&req.SubjectCode, "subject", "", "subject code")
	fs.IntVar(&req.InternalMarks, "internal", 0, "internal marks")
	fs.IntVar(&req.ExternalMarks, "external", 0, "external marks")
	fs.StringVar(&req.Grade, "grade", "", "grade")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlags(fs, "internal", "external"); err != nil {
		return err
	}

	if err := a.svc.UpdateResult(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Result updated.")
	return nil
}

// requireFlags rejects a parse where any of names was not set explicitly.
func requireFlags(fs *flag.FlagSet, names ...string) error {
	set := make(map[string]bool, len(names))
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, name := range names {
		if !set[name] {
			return fmt.Errorf("%s: %w --%s", fs.Name(), errMissingFlag, name)
		}
	}
	return nil
}

type datasetWriter interface {
	Write(w io.Writer, data export.Dataset) error
}

func (a *app) exportCSV(ctx context.Context, args []string) error {
	return a.exportTo(ctx, "export-csv", defaultExportPath, export.NewCSVExporter(), args)
}

func (a *app) exportXLSX(ctx context.Context, args []string) error {
	return a.exportTo(ctx, "export-xlsx", defaultXLSXExportPath, export.NewXLSXExporter(xlsxSheetName), args)
}

func (a *app) exportTo(ctx context.Context, name, defaultPath string, writer datasetWriter, args []string) (err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	out := fs.String("out", defaultPath, "output file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := a.svc.ExportResults(ctx)
	if err != nil {
		return err
	}

	f, err := a.store.Create(*out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := writer.Write(f, data); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Exported %d rows to %s\n", len(data.Rows), a.store.Path(*out))
	return nil
}
