package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/kollektivlab/access/model"
)

// The resident dataset uses the statistics agency's column names:
// workplace fields are suffixed _Ast, home fields _Bost. Coordinates
// are planar grid meters.
type residentCSV struct {
	Kon        int32 `csv:"kon"`
	LanAst     int32 `csv:"Lan_Ast"`
	KommunAst  int32 `csv:"Kommun_Ast"`
	XKoordAst  int32 `csv:"XKOORD_Ast"`
	YKoordAst  int32 `csv:"YKOORD_Ast"`
	LanBost    int32 `csv:"Lan_Bost"`
	KommunBost int32 `csv:"Kommun_Bost"`
	XKoordBost int32 `csv:"XKOORD_Bost"`
	YKoordBost int32 `csv:"YKOORD_Bost"`
}

func ParseResidents(data io.Reader) ([]model.RawPerson, error) {
	persons := []model.RawPerson{}

	i := -1
	err := gocsv.UnmarshalToCallbackWithError(data, func(row *residentCSV) error {
		i += 1
		if row.Kon != 1 && row.Kon != 2 {
			return errors.Errorf("kon %d out of range (row %d)", row.Kon, i+1)
		}
		persons = append(persons, model.RawPerson{
			Kon:        row.Kon,
			WorkCounty: row.LanAst,
			WorkKommun: row.KommunAst,
			WorkX:      row.XKoordAst,
			WorkY:      row.YKoordAst,
			HomeCounty: row.LanBost,
			HomeKommun: row.KommunBost,
			HomeX:      row.XKoordBost,
			HomeY:      row.YKoordBost,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling resident csv")
	}

	return persons, nil
}
