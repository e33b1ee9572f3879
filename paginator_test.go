package goviewset

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tUser struct {
	ID   uint
	Name string
}

const (
	tCountQuery  = "^SELECT count\\(\\*\\) FROM [`'\"]users[`'\"]$"
	tSelectQuery = "^SELECT \\* FROM [`'\"]users[`'\"] ORDER BY id ASC"
)

func Test_GORMPaginator_NumPages(t *testing.T) {
	tests := []struct {
		name       string
		count      int64
		perPage    int
		orphans    int
		allowEmpty bool
		want       int
	}{
		{"exact division", 10, 5, 0, true, 2},
		{"remainder spills over", 12, 5, 0, true, 3},
		{"orphans absorbed", 12, 5, 2, true, 2},
		{"single record", 1, 5, 0, true, 1},
		{"empty allowed is one page", 0, 5, 0, true, 1},
		{"empty disallowed is zero pages", 0, 5, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, db, dbMock, err := newGORMMySQLMock()
			require.NoError(t, err)

			dbMock.ExpectQuery(tCountQuery).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			p := NewGORMPaginator[tUser](db.Table("users"), tt.perPage).
				WithOrphans(tt.orphans).
				WithAllowEmptyFirstPage(tt.allowEmpty)

			got, err := p.NumPages()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			// The count is cached after the first call.
			got, err = p.NumPages()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_GORMPaginator_Page(t *testing.T) {
	sqlMockFnList := []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
		newGORMMySQLMock,
		newGORMPostgresMock,
	}

	tests := []struct {
		name          string
		count         int64
		perPage       int
		orphans       int
		number        int
		expectedQuery string
		expectedRows  *sqlmock.Rows

		wantNumber    int
		wantHasNext   bool
		wantHasOther  bool
		wantNumPages  int
	}{
		{
			name:          "first page",
			count:         12,
			perPage:       5,
			number:        1,
			expectedQuery: tSelectQuery + " LIMIT 5$",
			expectedRows: sqlmock.NewRows([]string{"id", "name"}).
				AddRow(1, "John Doe").AddRow(2, "Jane Doe"),
			wantNumber:   1,
			wantHasNext:  true,
			wantHasOther: true,
			wantNumPages: 3,
		},
		{
			name:          "middle page is offset",
			count:         12,
			perPage:       5,
			number:        2,
			expectedQuery: tSelectQuery + " LIMIT 5 OFFSET 5$",
			expectedRows:  sqlmock.NewRows([]string{"id", "name"}).AddRow(6, "John Doe"),
			wantNumber:    2,
			wantHasNext:   true,
			wantHasOther:  true,
			wantNumPages:  3,
		},
		{
			name:          "final page takes the remainder",
			count:         12,
			perPage:       5,
			number:        3,
			expectedQuery: tSelectQuery + " LIMIT 2 OFFSET 10$",
			expectedRows:  sqlmock.NewRows([]string{"id", "name"}).AddRow(11, "John Doe"),
			wantNumber:    3,
			wantHasNext:   false,
			wantHasOther:  true,
			wantNumPages:  3,
		},
		{
			name:          "final page absorbs orphans",
			count:         12,
			perPage:       5,
			orphans:       2,
			number:        2,
			expectedQuery: tSelectQuery + " LIMIT 7 OFFSET 5$",
			expectedRows:  sqlmock.NewRows([]string{"id", "name"}).AddRow(6, "John Doe"),
			wantNumber:    2,
			wantHasNext:   false,
			wantHasOther:  true,
			wantNumPages:  2,
		},
		{
			name:          "single page has no others",
			count:         3,
			perPage:       5,
			number:        1,
			expectedQuery: tSelectQuery + " LIMIT 3$",
			expectedRows:  sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "John Doe"),
			wantNumber:    1,
			wantHasNext:   false,
			wantHasOther:  false,
			wantNumPages:  1,
		},
	}

	for _, sqlMockFn := range sqlMockFnList {
		for _, tt := range tests {
			dialect, db, dbMock, err := sqlMockFn()
			t.Run(fmt.Sprintf("%s %s", dialect, tt.name), func(t *testing.T) {
				require.NoError(t, err)

				dbMock.ExpectQuery(tCountQuery).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))
				dbMock.ExpectQuery(tt.expectedQuery).WillReturnRows(tt.expectedRows)

				p := NewGORMPaginator[tUser](db.Table("users"), tt.perPage).
					WithOrphans(tt.orphans).
					WithSort(OrderBy{Column: "id", Direction: DirectionASC})

				page, err := p.Page(tt.number)
				require.NoError(t, err)

				require.Equal(t, tt.wantNumber, page.Number)
				require.Equal(t, tt.wantHasNext, page.HasNext())
				require.Equal(t, tt.wantHasOther, page.HasOtherPages())
				require.Equal(t, tt.wantNumPages, page.NumPages())
				require.Equal(t, tt.count, page.Total())

				assert.NoError(t, dbMock.ExpectationsWereMet())
			})
		}
	}
}

func Test_GORMPaginator_Page_Errors(t *testing.T) {
	tests := []struct {
		name       string
		count      int64
		number     int
		allowEmpty bool
		wantErr    error
	}{
		{"page below one", 12, 0, true, ErrInvalidPage},
		{"page beyond last", 12, 99, true, ErrEmptyPage},
		{"empty set disallowed", 0, 1, false, ErrEmptyPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, db, dbMock, err := newGORMMySQLMock()
			require.NoError(t, err)

			dbMock.ExpectQuery(tCountQuery).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			p := NewGORMPaginator[tUser](db.Table("users"), 5).
				WithAllowEmptyFirstPage(tt.allowEmpty)

			_, err = p.Page(tt.number)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func Test_GORMPaginator_Page_EmptyAllowedSkipsFetch(t *testing.T) {
	_, db, dbMock, err := newGORMMySQLMock()
	require.NoError(t, err)

	dbMock.ExpectQuery(tCountQuery).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	p := NewGORMPaginator[tUser](db.Table("users"), 5)

	page, err := p.Page(1)
	require.NoError(t, err)
	require.Empty(t, page.ObjectList)
	require.Equal(t, 1, page.Number)
	require.False(t, page.HasOtherPages())

	// No SELECT expectation was set: the zero-width slice must not touch
	// the database.
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_GORMPaginator_validate(t *testing.T) {
	_, db, _, err := newGORMMySQLMock()
	require.NoError(t, err)

	tests := []struct {
		name    string
		pager   *GORMPaginator[tUser]
		wantErr bool
	}{
		{"standard case, ok", NewGORMPaginator[tUser](db.Table("users"), 5), false},
		{"nil pager is invalid", (*GORMPaginator[tUser])(nil), true},
		{"no query object", NewGORMPaginator[tUser](nil, 5), true},
		{"per page below one", NewGORMPaginator[tUser](db.Table("users"), 0), true},
		{"negative orphans", NewGORMPaginator[tUser](db.Table("users"), 5).WithOrphans(-1), true},
		{
			"bad sort direction",
			NewGORMPaginator[tUser](db.Table("users"), 5).WithSort(OrderBy{Column: "id", Direction: "bad"}),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if gotErr := tt.pager.validate(); (gotErr != nil) != tt.wantErr {
				t.Errorf("%s: got error = %v, want error = %v", tt.name, gotErr, tt.wantErr)
			}
		})
	}
}
