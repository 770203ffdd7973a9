package tag

// Well-known tag constants for the attributes this module looks up by name
// in its own code (parser, pixel pipeline, anonymization). This is not an
// exhaustive re-export of TagDict — callers needing an arbitrary standard
// tag should look it up via Find/FindByKeyword.
var (
	FileMetaInformationGroupLength = New(0x0002, 0x0000)
	FileMetaInformationVersion     = New(0x0002, 0x0001)
	MediaStorageSOPClassUID        = New(0x0002, 0x0002)
	MediaStorageSOPInstanceUID     = New(0x0002, 0x0003)
	TransferSyntaxUID              = New(0x0002, 0x0010)
	ImplementationClassUID         = New(0x0002, 0x0012)
	ImplementationVersionName      = New(0x0002, 0x0013)

	SpecificCharacterSet = New(0x0008, 0x0005)
	SOPClassUID          = New(0x0008, 0x0016)
	SOPInstanceUID       = New(0x0008, 0x0018)
	StudyDate            = New(0x0008, 0x0020)
	Modality             = New(0x0008, 0x0060)

	PatientName     = New(0x0010, 0x0010)
	PatientID       = New(0x0010, 0x0020)
	PatientBirthDate = New(0x0010, 0x0030)
	PatientSex      = New(0x0010, 0x0040)

	StudyInstanceUID  = New(0x0020, 0x000D)
	SeriesInstanceUID = New(0x0020, 0x000E)

	SamplesPerPixel           = New(0x0028, 0x0002)
	PhotometricInterpretation = New(0x0028, 0x0004)
	PlanarConfiguration       = New(0x0028, 0x0006)
	NumberOfFrames            = New(0x0028, 0x0008)
	Rows                      = New(0x0028, 0x0010)
	Columns                   = New(0x0028, 0x0011)
	BitsAllocated             = New(0x0028, 0x0100)
	BitsStored                = New(0x0028, 0x0101)
	HighBit                   = New(0x0028, 0x0102)
	PixelRepresentation       = New(0x0028, 0x0103)
	WindowCenter              = New(0x0028, 0x1050)
	WindowWidth               = New(0x0028, 0x1051)
	RescaleIntercept          = New(0x0028, 0x1052)
	RescaleSlope              = New(0x0028, 0x1053)
	RescaleType               = New(0x0028, 0x1054)
	ModalityLUTSequence       = New(0x0028, 0x3000)
	LUTDescriptor             = New(0x0028, 0x3002)
	LUTExplanation            = New(0x0028, 0x3003)
	LUTData                   = New(0x0028, 0x3006)
	VOILUTSequence            = New(0x0028, 0x3010)

	FloatPixelData       = New(0x7FE0, 0x0008)
	DoubleFloatPixelData = New(0x7FE0, 0x0009)
	PixelData            = New(0x7FE0, 0x0010)

	Item                     = New(0xFFFE, 0xE000)
	ItemDelimitationItem     = New(0xFFFE, 0xE00D)
	SequenceDelimitationItem = New(0xFFFE, 0xE0DD)

	DirectoryRecordSequence                      = New(0x0004, 0x1220)
	OffsetOfTheNextDirectoryRecord                = New(0x0004, 0x1400)
	RecordInUseFlag                               = New(0x0004, 0x1410)
	OffsetOfReferencedLowerLevelDirectoryEntity   = New(0x0004, 0x1420)
	DirectoryRecordType                           = New(0x0004, 0x1430)
	ReferencedFileID                              = New(0x0004, 0x1500)
)
