package tables

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dtnitsch/cohortviz/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRead_CSV(t *testing.T) {
	path := writeFile(t, "姓名.csv", "\ufeff姓名,专业\n张小红,计算机\n李小红,数学\n王小红\n")

	tbl, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !reflect.DeepEqual(tbl.Header, []string{"姓名", "专业"}) {
		t.Errorf("Header = %q", tbl.Header)
	}
	if got := tbl.Names(); !reflect.DeepEqual(got, []string{"张小红", "李小红", "王小红"}) {
		t.Errorf("Names() = %q", got)
	}

	records, err := tbl.Records("专业")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	want := []models.NameRecord{
		{Name: "张小红", Category: "计算机"},
		{Name: "李小红", Category: "数学"},
		{Name: "王小红", Category: ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Records() = %v, want %v", records, want)
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() error = %v, want not-exist", err)
	}
}

func TestColumn_NotFound(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("name,value\na,1\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if _, err := tbl.Column("major"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Column() error = %v, want ErrColumnNotFound", err)
	}
	if _, err := tbl.Records("major"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("Records() error = %v, want ErrColumnNotFound", err)
	}

	values, err := tbl.Column("value")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if !reflect.DeepEqual(values, []string{"1"}) {
		t.Errorf("Column(value) = %q", values)
	}
}

func TestParseCSV_Malformed(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("name\n\"unterminated\n")); err == nil {
		t.Error("ParseCSV() error = nil, want parse error")
	}
}

func TestRead_HTML(t *testing.T) {
	path := writeFile(t, "schools.html", `<html><body>
<p>ignored</p>
<table>
  <tr><th>毕业学校</th><th>人数</th></tr>
  <tr><td> 青岛二中 </td><td>3</td></tr>
  <tr><td>济南外国语学校</td><td>2</td></tr>
</table>
<table><tr><td>second table</td></tr></table>
</body></html>`)

	tbl, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !reflect.DeepEqual(tbl.Header, []string{"毕业学校", "人数"}) {
		t.Errorf("Header = %q", tbl.Header)
	}
	if got := tbl.Names(); !reflect.DeepEqual(got, []string{"青岛二中", "济南外国语学校"}) {
		t.Errorf("Names() = %q", got)
	}
}

func TestRead_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"姓名", "专业"},
		{"陈思远", "海洋科学"},
		{"李思远", "计算机"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	_ = f.Close()

	tbl, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	records, err := tbl.Records("专业")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	want := []models.NameRecord{
		{Name: "陈思远", Category: "海洋科学"},
		{Name: "李思远", Category: "计算机"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("Records() = %v, want %v", records, want)
	}
}
