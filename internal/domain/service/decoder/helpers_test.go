package decoder

import "github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"

// stubDictionary is a minimal in-memory dictionary for decoder tests
type stubDictionary struct {
	fields  map[int]*fix.FieldDefinition
	header  map[string]bool
	trailer map[string]bool
}

func (s *stubDictionary) FieldByNumber(n int) (*fix.FieldDefinition, bool) {
	d, ok := s.fields[n]
	return d, ok
}

func (s *stubDictionary) FieldByName(name string) (*fix.FieldDefinition, bool) {
	for _, d := range s.fields {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

func (s *stubDictionary) IsHeaderField(name string) bool  { return s.header[name] }
func (s *stubDictionary) IsTrailerField(name string) bool { return s.trailer[name] }

func (s *stubDictionary) EnumDescription(n int, value string) (string, bool) {
	return s.fields[n].Describe(value)
}

func newStubDictionary() *stubDictionary {
	defs := []*fix.FieldDefinition{
		{Number: 8, Name: "BeginString", Type: "STRING"},
		{Number: 9, Name: "BodyLength", Type: "LENGTH"},
		{Number: 10, Name: "CheckSum", Type: "STRING"},
		{Number: 11, Name: "ClOrdID", Type: "STRING"},
		{Number: 15, Name: "Currency", Type: "CURRENCY"},
		{Number: 21, Name: "HandlInst", Type: "CHAR", Values: []fix.EnumValue{
			{Enum: "1", Description: "AUTOMATED_EXECUTION_NO_INTERVENTION"},
			{Enum: "2", Description: "AUTOMATED_EXECUTION_INTERVENTION_OK"},
			{Enum: "3", Description: "MANUAL_ORDER"},
		}},
		{Number: 34, Name: "MsgSeqNum", Type: "SEQNUM"},
		{Number: 35, Name: "MsgType", Type: "STRING", Values: []fix.EnumValue{
			{Enum: "0", Description: "HEARTBEAT"},
			{Enum: "D", Description: "ORDER_SINGLE"},
		}},
		{Number: 38, Name: "OrderQty", Type: "QTY"},
		{Number: 40, Name: "OrdType", Type: "CHAR", Values: []fix.EnumValue{
			{Enum: "1", Description: "MARKET"},
			{Enum: "2", Description: "LIMIT"},
		}},
		{Number: 49, Name: "SenderCompID", Type: "STRING"},
		{Number: 52, Name: "SendingTime", Type: "UTCTIMESTAMP"},
		{Number: 54, Name: "Side", Type: "CHAR", Values: []fix.EnumValue{
			{Enum: "1", Description: "BUY"},
			{Enum: "2", Description: "SELL"},
			{Enum: "1", Description: "DUPLICATE_BUY"},
		}},
		{Number: 55, Name: "Symbol", Type: "STRING"},
		{Number: 56, Name: "TargetCompID", Type: "STRING"},
		{Number: 60, Name: "TransactTime", Type: "UTCTIMESTAMP"},
		{Number: 93, Name: "SignatureLength", Type: "LENGTH"},
	}
	d := &stubDictionary{
		fields: make(map[int]*fix.FieldDefinition, len(defs)),
		header: map[string]bool{
			"BeginString": true, "BodyLength": true, "MsgType": true, "MsgSeqNum": true,
			"SenderCompID": true, "SendingTime": true, "TargetCompID": true,
		},
		trailer: map[string]bool{"CheckSum": true, "SignatureLength": true},
	}
	for _, def := range defs {
		d.fields[def.Number] = def
	}
	return d
}

const sampleOrder = "8=FIX.4.4|9=148|35=D|34=1080|49=TESTBUY1|52=20180920-18:14:19.508|" +
	"56=TESTSELL1|11=636730640278898634|15=USD|21=2|38=7000|40=1|54=1|55=MSFT|" +
	"60=20180920-18:14:19.492|10=092|"
