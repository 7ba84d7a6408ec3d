package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/model"
)

func TestParseResidents(t *testing.T) {
	content := `
kon,Lan_Ast,Kommun_Ast,XKOORD_Ast,YKOORD_Ast,Lan_Bost,Kommun_Bost,XKOORD_Bost,YKOORD_Bost
1,14,1480,6404050,317050,14,1480,6400050,319050
2,14,1407,6410050,320050,14,1480,6401050,318050`

	persons, err := ParseResidents(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	require.Len(t, persons, 2)

	assert.Equal(t, model.RawPerson{
		Kon:        1,
		WorkCounty: 14,
		WorkKommun: 1480,
		WorkX:      6404050,
		WorkY:      317050,
		HomeCounty: 14,
		HomeKommun: 1480,
		HomeX:      6400050,
		HomeY:      319050,
	}, persons[0])
	assert.Equal(t, int32(2), persons[1].Kon)
}

func TestParseResidentsBadGender(t *testing.T) {
	content := `
kon,Lan_Ast,Kommun_Ast,XKOORD_Ast,YKOORD_Ast,Lan_Bost,Kommun_Bost,XKOORD_Bost,YKOORD_Bost
3,14,1480,6404050,317050,14,1480,6400050,319050`
	_, err := ParseResidents(strings.NewReader(strings.TrimSpace(content)))
	assert.Error(t, err)
}

func TestParseTransfersRecords(t *testing.T) {
	content := `
from_stop_id,to_stop_id,transfer_type,min_transfer_time,from_trip_id,to_trip_id
9021014001760000,9021014001950000,2,420,,
9022014001760001,9022014001760002,1,0,101,102`

	transfers, err := ParseTransfers(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	assert.Equal(t, model.TransferWalk, transfers[0].Type)
	assert.Equal(t, int32(420), transfers[0].MinTransferTime)
	assert.Equal(t, model.TransferStaySeated, transfers[1].Type)
	assert.Equal(t, model.TripID(101), transfers[1].FromTripID)
	assert.Equal(t, model.TripID(102), transfers[1].ToTripID)
}
