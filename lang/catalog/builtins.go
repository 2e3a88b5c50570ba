package catalog

import "github.com/mna/unacs/lang/opcode"

// buildDedicated populates the dedicated-function table: built-ins each
// identified by their own opcode rather than by a shared CALLFUNC-style ID.
// This is a representative subset of the full historical table (see
// DESIGN.md): common delay, random, hud-message-control, sound, player and
// math built-ins, one per line as "name,format".
func buildDedicated() {
	for _, row := range [][2]string{
		{"Delay", ";i"},
		{"Random", "i;ii"},
		{"ThingCount", "i;ii"},
		{"TagWait", ";i"},
		{"PolyWait", ";i"},
		{"ChangeFloor", ";is"},
		{"ChangeCeiling", ";is"},
		{"LineSide", "i;"},
		{"ScriptWait", ";i"},
		{"ClearLineSpecial", ";"},
		{"PlayerCount", "i;"},
		{"GameType", "i;"},
		{"GameSkill", "i;"},
		{"Timer", "i;"},
		{"SectorSound", ";si"},
		{"AmbientSound", ";si"},
		{"SoundSequence", ";s"},
		{"SetLineTexture", ";iiis"},
		{"SetLineBlocking", ";ii"},
		{"SetLineSpecial", ";iiiiiii"},
		{"ThingSound", ";isi"},
		{"EndPrint", ";"},
		{"EndPrintBold", ";"},
		{"PlayerTeam", "i;"},
		{"PlayerHealth", "i;"},
		{"PlayerArmorPoints", "i;"},
		{"PlayerFrags", "i;"},
		{"BlueTeamCount", "i;"},
		{"RedTeamCount", "i;"},
		{"BlueTeamScore", "i;"},
		{"RedTeamScore", "i;"},
		{"IsOneFlagCTF", "b;"},
		{"GetInvasionWave", "i;"},
		{"GetInvasionState", "i;"},
		{"MusicChange", ";si"},
		{"ConsoleCommand", ";sii"},
		{"SinglePlayer", "b;"},
		{"FixedMul", "f;ff"},
		{"FixedDiv", "f;ff"},
		{"SetGravity", ";f"},
		{"SetAirControl", ";f"},
		{"ClearInventory", ";"},
		{"GiveInventory", ";si"},
		{"TakeInventory", ";si"},
		{"CheckInventory", "i;s"},
		{"SpawnSpot", "i;sii;i"},
		{"SpawnSpotFacing", "i;si;i"},
		{"SetMusic", ";s;ii"},
		{"LocalSetMusic", ";s;ii"},
		{"SetFont", ";s"},
		{"SetHudSize", ";iib"},
		{"GetLevelInfo", "i;i"},
		{"Earthquake", "i;iiiis"},
		{"ScriptWaitNamed", ";s"},
		{"SetActorProperty", ";iii"},
		{"GetActorProperty", "i;ii"},
		{"PlayerNumber", "i;"},
		{"ActivatorTID", "i;"},
		{"SetMarineWeapon", ";ii"},
		{"SetActorPitch", ";if"},
		{"GetActorPitch", "f;i"},
		{"SetPlayerProperty", ";iiiii"},
		{"ChangeLevel", ";sii;i"},
		{"SectorDamage", ";iiiis"},
		{"ReplaceTextures", ";ssi"},
		{"GetActorPosition", "f;ii"},
		{"GetActorVelocity", "f;ii"},
		{"SetActorVelocity", ";iffffbb"},
		{"GetActorAngle", "f;i"},
		{"SetActorAngle", ";if"},
		{"SoundVolume", ";if"},
		{"PlaySound", ";isf;ibf"},
		{"StopSound", ";ii"},
		{"StrLen", "i;s"},
		{"GetChar", "i;si"},
		{"SetResultValue", ";i"},
		{"GetLineRowOffset", "i;"},
		{"ScriptRunning", "b;i"},
	} {
		addDedicated(row[0], row[1])
	}
}

// buildActionSpecials populates the action-special table: game-provided
// functions identified by a small integer ID and invoked via the LSPEC*
// opcode family. This is a representative subset of the full historical
// table (see DESIGN.md), covering the commonly scripted polyobject, door,
// floor, ceiling, lighting, teleport, plane-scroll and scripting-control
// specials. ASPECExecute (80) is included because the annotator's
// ACS_ExecuteWait idiom recognition depends on it.
func buildActionSpecials() {
	for _, row := range [][3]any{
		{1, "Polyobj_StartLine", ";iiii"},
		{2, "Polyobj_RotateLeft", ";iii"},
		{3, "Polyobj_RotateRight", ";iii"},
		{4, "Polyobj_Move", ";iiii"},
		{6, "Polyobj_MoveTimes8", ";iiii"},
		{7, "Polyobj_DoorSwing", ";iiii"},
		{8, "Polyobj_DoorSlide", ";iiiii"},
		{10, "Door_Close", ";iii"},
		{11, "Door_Open", ";iii"},
		{12, "Door_Raise", ";iiii"},
		{13, "Door_LockedRaise", ";iiiii"},
		{20, "Floor_LowerByValue", ";iiii"},
		{21, "Floor_LowerToLowest", ";iii"},
		{22, "Floor_RaiseByValue", ";iiii"},
		{23, "Floor_RaiseToHighest", ";iii"},
		{24, "Floor_RaiseAndCrush", ";iiii;i"},
		{25, "Pillar_Build", ";iiii"},
		{26, "Pillar_Open", ";iiiii"},
		{27, "Stairs_BuildDown", ";iiiii"},
		{28, "Stairs_BuildUp", ";iiiii"},
		{29, "Floor_RaiseAndCrushDoom", ";iiii;i"},
		{30, "Floor_RaiseToNearest", ";iii"},
		{31, "Floor_LowerToNearest", ";iii"},
		{36, "Floor_LowerToHighest", ";iiii"},
		{40, "Ceiling_LowerByValue", ";iiii"},
		{41, "Ceiling_RaiseByValue", ";iiii"},
		{42, "Ceiling_CrushAndRaise", ";iiii;i"},
		{43, "Ceiling_LowerAndCrush", ";iii;i"},
		{60, "Light_ForceLightning", ";i"},
		{61, "Light_RaiseByValue", ";ii"},
		{62, "Light_LowerByValue", ";ii"},
		{63, "Light_ChangeToValue", ";ii"},
		{64, "Light_Fade", ";iii"},
		{65, "Light_Glow", ";iiii"},
		{66, "Light_Flicker", ";iii"},
		{67, "Light_Strobe", ";iiii"},
		{70, "Radius_Quake", ";iiiii"},
		{71, "Line_SetIdentification", ";i;iii"},
		{80, "ACS_Execute", ";ii;ii"},
		{81, "ACS_Suspend", ";ii"},
		{82, "ACS_Terminate", ";ii"},
		{83, "ACS_LockedExecute", ";iiii"},
		{84, "ACS_ExecuteWithResult", "i;i;iiii"},
		{85, "ACS_LockedExecuteDoor", ";iiii"},
		{86, "Polyobj_MoveToSpot", ";iii"},
		{109, "Light_MinNeighbor", ";i"},
		{110, "Light_MaxNeighbor", ";i"},
		{118, "Scroll_Texture_Left", ";ii"},
		{119, "Scroll_Texture_Right", ";ii"},
		{120, "Scroll_Texture_Up", ";ii"},
		{121, "Scroll_Texture_Down", ";ii"},
		{128, "FloorAndCeiling_LowerByValue", ";iiii"},
		{129, "FloorAndCeiling_RaiseByValue", ";iiii"},
		{153, "Teleport", ";iib"},
		{154, "Teleport_NoFog", ";ii;ib"},
		{155, "ThrustThing", ";iii;i"},
		{156, "DamageThing", ";i;i"},
		{157, "Teleport_NewMap", ";sib"},
		{158, "Teleport_EndGame", ";"},
		{160, "Sector_SetTranslucent", ";iiii"},
		{191, "Line_SetPortal", ";iiii;i"},
		{200, "Polyobj_OR_MoveToSpot", ";iii"},
	} {
		addActionSpecial(row[0].(int), row[1].(string), row[2].(string))
	}
}

// buildExtensions populates the extension-function table: built-ins invoked
// via the generic CALLFUNC opcode and distinguished by a numeric ID, rather
// than by an opcode of their own. This is a representative subset of the
// full historical table (see DESIGN.md). ExtFuncNamedExecute (39) is
// included because the annotator's ACS_NamedExecuteWait idiom recognition
// depends on it.
func buildExtensions() {
	for _, row := range [][3]any{
		{1, "GetLineUDMFInt", "i;is"},
		{2, "GetLineUDMFFixed", "f;is"},
		{3, "GetThingUDMFInt", "i;is"},
		{4, "GetThingUDMFFixed", "f;is"},
		{5, "GetSectorUDMFInt", "i;is"},
		{6, "GetSectorUDMFFixed", "f;is"},
		{7, "GetSideUDMFInt", "i;iis"},
		{8, "GetSideUDMFFixed", "f;iis"},
		{9, "GetActorVelX", "f;i"},
		{10, "GetActorVelY", "f;i"},
		{11, "GetActorVelZ", "f;i"},
		{12, "SetActivator", "b;i;i"},
		{13, "SetActivatorToTarget", "b;i"},
		{14, "GetActorViewHeight", "i;i"},
		{15, "GetChar", "i;si"},
		{16, "GetAirSupply", "i;i"},
		{17, "SetAirSupply", "b;ii"},
		{18, "SetSkyScrollSpeed", ";if"},
		{19, "GetArmorType", "i;si"},
		{20, "SpawnSpotForced", "i;sii;i"},
		{21, "SpawnSpotFacingForced", "i;si;i"},
		{22, "CheckActorProperty", "b;iii"},
		{23, "SetActorRoll", ";if"},
		{24, "GetActorRoll", "f;i"},
		{25, "SetTextureOffset", ";iiif"},
		{26, "GetActorTeleFogHeight", "i;"},
		{27, "SetActorTeleFog", ";iss"},
		{28, "SwapActorTeleFog", "b;i"},
		{29, "SetActorRoll", ";if"},
		{39, "ACS_NamedExecute", ";si;iii"},
		{40, "ACS_NamedSuspend", ";si"},
		{41, "ACS_NamedTerminate", ";si"},
		{42, "ACS_NamedLockedExecute", ";sii;i"},
		{43, "ACS_NamedLockedExecuteDoor", ";sii;i"},
		{44, "ACS_NamedExecuteWithResult", "i;s;iiii"},
		{45, "ACS_NamedExecuteAlways", ";si;iii"},
		{72, "UniqueTID", "i;i;i"},
		{73, "IsTIDUsed", "b;i"},
		{74, "Sqrt", "i;i"},
		{75, "FixedSqrt", "f;f"},
		{76, "VectorLength", "f;ff"},
		{80, "SetHUDClipRect", ";iiii;ii"},
		{81, "SetHUDWrapWidth", ";i"},
		{86, "GetCVar", "i;s"},
		{87, "SetResultValue", ";i"},
		{91, "StrCmp", "i;ss;i"},
		{92, "StrICmp", "i;ss;i"},
	} {
		addExtension(row[0].(int), row[1].(string), row[2].(string))
	}
}

// buildFormatFuncs populates the print-family built-in table, each
// identified by the opcode that terminates its print block. Format strings
// follow builtin.c's own entries for these six identities: Print/PrintBold/
// Log take no positional arguments beyond their format items; HudMessage/
// HudMessageBold take six required and three optional trailing positional
// arguments (type, id, color, x, y, hold time, then optional fade parameters),
// popped after the MOREHUDMESSAGE marker; StrParam returns the captured
// string rather than emitting it.
func buildFormatFuncs() {
	addFormatFunc("Print", "", opcode.ENDPRINT)
	addFormatFunc("PrintBold", "", opcode.ENDPRINTBOLD)
	addFormatFunc("HudMessage", ";iiifff;fff", opcode.ENDHUDMESSAGE)
	addFormatFunc("HudMessageBold", ";iiifff;fff", opcode.ENDHUDMESSAGEBOLD)
	addFormatFunc("Log", "", opcode.ENDLOG)
	addFormatFunc("StrParam", "s", opcode.SAVESTRING)
}
